package engine

import (
	"errors"
	"fmt"
)

// ErrNoAPIKeys means no YouTube API credentials are configured.
// Surfaced immediately, never retried.
var ErrNoAPIKeys = errors.New("no YouTube API keys configured, set YOUTUBE_API_KEY (comma-separated for rotation)")

// ErrNoSearchKeys means the Google CSE credential pair is missing.
var ErrNoSearchKeys = errors.New("no web search credentials configured, set CSE_API_KEY and CSE_CX")

// ErrNoTraceSignals means neither tokens nor keyphrases could be extracted
// from the video, so there is nothing to search for.
var ErrNoTraceSignals = errors.New("no tokens or keyphrases extracted, cannot trace source")

// QuotaError reports that every key in the pool was rejected with a quota
// error. Adding more keys to YOUTUBE_API_KEY is the usual fix.
type QuotaError struct {
	Keys int   // pool size
	Err  error // last underlying HTTP error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("all %d YouTube API keys exhausted their quota: %v", e.Keys, e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }
