package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgent identifies vidscout on outbound HTTP calls.
const UserAgent = "vidscout/1.0"

var (
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
	hangulRe  = regexp.MustCompile(`[가-힣]`)
)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// HasHangul reports whether s contains any Korean syllable.
func HasHangul(s string) bool {
	return hangulRe.MatchString(s)
}

// Truncate returns the first n bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Safe for UTF-8 (Hangul, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
