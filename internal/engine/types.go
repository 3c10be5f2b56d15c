package engine

import (
	"fmt"
	"strings"
)

// --- Core record types ---

// VideoRecord is one fetched video. URL is the deduplication key: any
// pipeline stage that dedups keeps at most one record per URL.
type VideoRecord struct {
	Platform        string  `json:"platform"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ChannelID       string  `json:"channel_id,omitempty"`
	Views           *int64  `json:"views,omitempty"`      // nil when the API omits statistics
	ViewsText       string  `json:"views_text,omitempty"` // compact display figure, e.g. 1.2M
	URL             string  `json:"url"`
	VideoID         string  `json:"video_id"`
	ThumbnailURL    string  `json:"thumbnail,omitempty"`
	PublishedAt     string  `json:"published_at,omitempty"`
	DurationSeconds int     `json:"duration_seconds"`
	DurationText    string  `json:"duration_text,omitempty"`
	IsShorts        bool    `json:"is_shorts"`
	Description     string  `json:"description,omitempty"`
	AgeScore        int     `json:"age_score,omitempty"`        // attached during demographic scoring
	EngagementScore float64 `json:"engagement_score,omitempty"` // attached by the trending pipeline
}

// ViewsOr returns the view count, or def when statistics were absent.
func (r *VideoRecord) ViewsOr(def int64) int64 {
	if r.Views == nil {
		return def
	}
	return *r.Views
}

// SearchRequest is the full parameter set for one search. A pure value
// object: caching keys off its field values.
type SearchRequest struct {
	Query             string   `json:"query" jsonschema:"Search query"`
	FetchTotal        int      `json:"fetch_total,omitempty" jsonschema:"Target result count, clamped to 1..500 (default 100)"`
	CCOnly            bool     `json:"cc_only,omitempty" jsonschema:"Creative Commons licensed videos only"`
	UploadWindow      string   `json:"upload_window,omitempty" jsonschema:"Recency window: 24h, 7d, 30d, 1y, or empty for all time"`
	IncludeChannels   []string `json:"include_channels,omitempty" jsonschema:"Channel names to keep (exact match)"`
	ExcludeChannels   []string `json:"exclude_channels,omitempty" jsonschema:"Channel names to drop"`
	IncludeChannelIDs []string `json:"include_channel_ids,omitempty" jsonschema:"Channel IDs to keep"`
	ExcludeChannelIDs []string `json:"exclude_channel_ids,omitempty" jsonschema:"Channel IDs to drop"`
	IncludeWords      []string `json:"include_words,omitempty" jsonschema:"Title must contain all of these, case-insensitive"`
	ExcludeWords      []string `json:"exclude_words,omitempty" jsonschema:"Title must contain none of these"`
	RegionCode        string   `json:"region_code,omitempty" jsonschema:"Region code, e.g. KR, US"`
	RelevanceLanguage string   `json:"relevance_language,omitempty" jsonschema:"Relevance language code, e.g. ko"`
	SafeSearch        string   `json:"safe_search,omitempty" jsonschema:"Safe search level: none, moderate, strict"`
	Order             string   `json:"order,omitempty" jsonschema:"Sort order: viewCount or date (default viewCount)"`
	DurationBucket    string   `json:"duration_bucket,omitempty" jsonschema:"API duration bucket: short, medium, long"`
	MinSeconds        int      `json:"min_seconds,omitempty" jsonschema:"Minimum duration in seconds, 0 = unbounded"`
	MaxSeconds        int      `json:"max_seconds,omitempty" jsonschema:"Maximum duration in seconds, 0 = unbounded"`
	AgeTag            string   `json:"age_tag,omitempty" jsonschema:"Demographic bracket: 10s..60s, or all"`
}

// Key returns a deterministic cache key covering every request field.
func (r SearchRequest) Key() string {
	return CacheKey("video_search",
		r.Query,
		fmt.Sprintf("%d|%t|%s|%s|%s|%s|%s|%s|%d|%d|%s",
			r.FetchTotal, r.CCOnly, r.UploadWindow, r.RegionCode, r.RelevanceLanguage,
			r.SafeSearch, r.Order, r.DurationBucket, r.MinSeconds, r.MaxSeconds, r.AgeTag),
		strings.Join(r.IncludeChannels, ","), strings.Join(r.ExcludeChannels, ","),
		strings.Join(r.IncludeChannelIDs, ","), strings.Join(r.ExcludeChannelIDs, ","),
		strings.Join(r.IncludeWords, ","), strings.Join(r.ExcludeWords, ","),
	)
}

// TrendingRequest parametrizes the trending/recommendation pipeline.
type TrendingRequest struct {
	RegionCode string `json:"region_code,omitempty" jsonschema:"Region code, e.g. KR (default KR)"`
	FetchTotal int    `json:"fetch_total,omitempty" jsonschema:"Chart candidate pool size (default 200)"`
	Order      string `json:"order,omitempty" jsonschema:"Sort order: viewCount or date"`
	AgeTag     string `json:"age_tag,omitempty" jsonschema:"Demographic bracket: 10s..60s, or all"`
	Seed       int64  `json:"seed,omitempty" jsonschema:"Shuffle seed for reproducible sampling, 0 = time-based"`
}

// ExternalCandidate is one web-search hit during source tracing.
type ExternalCandidate struct {
	Title   string  `json:"title"`
	Link    string  `json:"link"`
	Snippet string  `json:"snippet,omitempty"`
	Score   float64 `json:"score"`
}

// WebResult is a raw title/link/snippet triple from the web search API.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// VideoDetail is the raw shape of one videos.list item, before scoring.
// Statistics come back as decimal strings from the API; missing fields stay
// empty and score as zero downstream.
type VideoDetail struct {
	VideoID      string
	Title        string
	ChannelTitle string
	ChannelID    string
	Description  string
	PublishedAt  string
	Thumbnail    string
	Duration     string // ISO-8601, e.g. PT1H2M3S
	ViewCount    string
	LikeCount    string
	CommentCount string
}

// --- Tool input types ---

type KeywordBoardInput struct {
	AgeTag     string `json:"age_tag" jsonschema:"Demographic bracket: 10s..60s, or all"`
	RegionCode string `json:"region_code,omitempty" jsonschema:"Region code (default KR)"`
	PerKeyword int    `json:"per_keyword,omitempty" jsonschema:"Results kept per keyword (default 6)"`
}

type SourceTraceInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID of a shorts video"`
}

type VideoAnalysisInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID"`
}

// --- Tool output types (JSON responses) ---

type VideoSearchOutput struct {
	Query          string        `json:"query"`
	Total          int           `json:"total"`
	EstimatedUnits int           `json:"estimated_units"`
	RecentSearches []string      `json:"recent_searches,omitempty"` // session history, oldest first
	Results        []VideoRecord `json:"results"`
}

type TrendingOutput struct {
	Total          int           `json:"total"`
	EstimatedUnits int           `json:"estimated_units"`
	FallbackUsed   bool          `json:"fallback_used,omitempty"`
	Degraded       []string      `json:"degraded,omitempty"` // best-effort failures, surfaced instead of hidden
	Results        []VideoRecord `json:"results"`
}

type KeywordBoardOutput struct {
	AgeTag         string                   `json:"age_tag"`
	EstimatedUnits int                      `json:"estimated_units"`
	Board          map[string][]VideoRecord `json:"board"`
}

type SourceTraceOutput struct {
	VideoID    string              `json:"video_id"`
	Tokens     []string            `json:"tokens,omitempty"`
	Keyphrases []string            `json:"keyphrases,omitempty"`
	Degraded   []string            `json:"degraded,omitempty"`
	Candidates []ExternalCandidate `json:"candidates"`
}

type TranscriptSection struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type VideoAnalysisOutput struct {
	VideoID         string              `json:"video_id"`
	Title           string              `json:"title"`
	TranslatedTitle string              `json:"translated_title,omitempty"`
	TranscriptLang  string              `json:"transcript_lang,omitempty"`
	Sections        []TranscriptSection `json:"sections,omitempty"`
	ShortsScript    string              `json:"shorts_script"`
	ImagePrompt     string              `json:"image_prompt"`
	Degraded        []string            `json:"degraded,omitempty"`
}
