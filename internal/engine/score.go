package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// isoDurationRE matches the constrained PT duration grammar the videos API
// uses for contentDetails.duration.
var isoDurationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO-8601 duration like "PT1H2M3S" to seconds.
// Empty or unparsable input yields 0.
func ParseISODuration(s string) int {
	if s == "" {
		return 0
	}
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	se, _ := strconv.Atoi(m[3])
	return h*3600 + mi*60 + se
}

// DurationText renders seconds as h:mm:ss, or m:ss under an hour.
func DurationText(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseCount parses a decimal statistics field, treating missing or
// malformed values as 0.
func ParseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// EngagementScore computes (likes + comments) / max(1, views)^0.85 from the
// raw statistics strings. Missing or malformed fields count as 0; the result
// is always finite and non-negative.
func EngagementScore(viewCount, likeCount, commentCount string) float64 {
	v := ParseCount(viewCount)
	if v < 1 {
		v = 1
	}
	l := ParseCount(likeCount)
	c := ParseCount(commentCount)
	return float64(l+c) / math.Pow(float64(v), 0.85)
}

// PublishedAfter maps a relative upload window to an absolute RFC3339 UTC
// cutoff, or "" for all time. Unknown labels mean no cutoff.
func PublishedAfter(window string) string {
	var d time.Duration
	switch window {
	case "24h":
		d = 24 * time.Hour
	case "7d":
		d = 7 * 24 * time.Hour
	case "30d":
		d = 30 * 24 * time.Hour
	case "1y":
		d = 365 * 24 * time.Hour
	default:
		return ""
	}
	return time.Now().UTC().Add(-d).Format(time.RFC3339)
}

// FormatCount renders a count as a compact human figure (1.2K, 3.4M, 1.0B).
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return strconv.FormatInt(n, 10)
}
