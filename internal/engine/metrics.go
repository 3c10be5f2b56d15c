package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchPageRequests  atomic.Int64
	VideoDetailRequests atomic.Int64
	TrendingRequests    atomic.Int64
	CSERequests         atomic.Int64
	TranslateRequests   atomic.Int64
	TranscriptRequests  atomic.Int64
	OCRRequests         atomic.Int64
	KeyRotations        atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_page_requests":  metrics.SearchPageRequests.Load(),
		"video_detail_requests": metrics.VideoDetailRequests.Load(),
		"trending_requests":     metrics.TrendingRequests.Load(),
		"cse_requests":          metrics.CSERequests.Load(),
		"translate_requests":    metrics.TranslateRequests.Load(),
		"transcript_requests":   metrics.TranscriptRequests.Load(),
		"ocr_requests":          metrics.OCRRequests.Load(),
		"key_rotations":         metrics.KeyRotations.Load(),
		"cache_hits":            hits,
		"cache_misses":          misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"search_page_requests", "video_detail_requests", "trending_requests",
		"cse_requests", "translate_requests", "transcript_requests",
		"ocr_requests", "key_rotations",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrSearchPage()  { metrics.SearchPageRequests.Add(1) }
func IncrVideoDetail() { metrics.VideoDetailRequests.Add(1) }
func IncrTrending()    { metrics.TrendingRequests.Add(1) }
func IncrCSE()         { metrics.CSERequests.Add(1) }
func IncrTranslate()   { metrics.TranslateRequests.Add(1) }
func IncrTranscript()  { metrics.TranscriptRequests.Add(1) }
func IncrOCR()         { metrics.OCRRequests.Add(1) }
func IncrKeyRotation() { metrics.KeyRotations.Add(1) }
