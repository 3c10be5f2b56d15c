package engine

import (
	"sync"

	"github.com/google/uuid"
)

const maxSearchHistory = 10

// Session carries per-user mutable state across pipeline calls: the
// key-rotation pointer (read and updated by the YouTube client only) and the
// recent-search history. The key pool itself is process-wide and immutable;
// only this pointer moves, so rotation can start from the key that last
// succeeded instead of hammering an exhausted one.
type Session struct {
	ID string

	mu      sync.Mutex
	keyIdx  int
	history []string
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// KeyIndex returns the index of the last key that succeeded.
func (s *Session) KeyIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyIdx
}

// SetKeyIndex records the key index that just succeeded.
func (s *Session) SetKeyIndex(i int) {
	s.mu.Lock()
	s.keyIdx = i
	s.mu.Unlock()
}

// RecordSearch appends q to the search history, keeping the last 10 unique
// queries in order.
func (s *Session) RecordSearch(q string) {
	if q == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.history {
		if h == q {
			return
		}
	}
	s.history = append(s.history, q)
	if len(s.history) > maxSearchHistory {
		s.history = s.history[len(s.history)-maxSearchHistory:]
	}
}

// History returns a copy of the recent search queries, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
