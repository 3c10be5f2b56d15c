package engine

import (
	"context"
	"net/http"
	"time"
)

// OCRFunc extracts text from an image. The engine treats OCR as an external
// collaborator: nil disables thumbnail OCR entirely, and failures degrade to
// no extracted text.
type OCRFunc func(ctx context.Context, image []byte) (string, error)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKeys []string // key pool, rotated on quota exhaustion
	CSEAPIKey      string   // Google Custom Search key
	CSECX          string   // Google Custom Search engine ID
	DeepLAPIKey    string   // optional; MyMemory is the keyless fallback

	DefaultRegion       string
	RequestTimeout      time.Duration
	DetailBatchInterval time.Duration // politeness pause between videos.list batches
	TraceSearchInterval time.Duration // politeness pause between site-scoped CSE calls

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	OCR        OCRFunc // nil = thumbnail OCR disabled

	// API bases, overridable for tests.
	YouTubeAPIBase string
	CSEAPIBase     string
	DeepLAPIBase   string
	MyMemoryAPIBase string
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (videos, scoutserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.YouTubeAPIBase == "" {
		c.YouTubeAPIBase = "https://www.googleapis.com/youtube/v3"
	}
	if c.CSEAPIBase == "" {
		c.CSEAPIBase = "https://www.googleapis.com/customsearch/v1"
	}
	if c.DeepLAPIBase == "" {
		c.DeepLAPIBase = "https://api-free.deepl.com/v2/translate"
	}
	if c.MyMemoryAPIBase == "" {
		c.MyMemoryAPIBase = "https://api.mymemory.translated.net/get"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 12 * time.Second}
	}
	if c.DefaultRegion == "" {
		c.DefaultRegion = "KR"
	}
	cfg = c
	Cfg = &cfg
}
