// vidscout — personal YouTube aggregation MCP server.
//
// Exposes five MCP tools: video_search, trending_recos, keyword_board,
// source_trace, video_analysis. Runs as HTTP MCP server or stdio transport.
//
// The engine layer (internal/engine) does the actual work: paginated
// multi-key YouTube Data API fetching, demographic scoring, trending
// fallback, and short-form source tracing via Google CSE.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/minsuk/vidscout/internal/engine"
	"github.com/minsuk/vidscout/internal/scoutserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8897")
)

func main() {
	_ = godotenv.Load()
	initEngine()

	slog.Info("starting vidscout",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "vidscout",
		Version: version,
	}, nil)

	scoutserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 5))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "vidscout",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		// Several keys can be configured comma-separated; the client
		// rotates to the next one when a key's daily quota runs out.
		YouTubeAPIKeys: env.List("YOUTUBE_API_KEY", ""),
		CSEAPIKey:      env.Str("CSE_API_KEY", ""),
		CSECX:          env.Str("CSE_CX", ""),
		DeepLAPIKey:    env.Str("DEEPL_API_KEY", ""),

		DefaultRegion:        env.Str("DEFAULT_REGION", "KR"),
		RequestTimeout:       env.Duration("REQUEST_TIMEOUT", 12*time.Second),
		DetailBatchInterval:  env.Duration("DETAIL_BATCH_INTERVAL", 120*time.Millisecond),
		TraceSearchInterval:  env.Duration("TRACE_SEARCH_INTERVAL", 100*time.Millisecond),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	engine.Init(c)
	engine.InitCache(env.Str("REDIS_URL", ""), c.CacheMaxEntries, c.CacheCleanupInterval)

	if len(c.YouTubeAPIKeys) == 0 {
		slog.Warn("no YouTube API keys configured, search tools will fail")
	}
	if c.CSEAPIKey == "" || c.CSECX == "" {
		slog.Warn("no CSE credentials configured, source_trace disabled")
	}
}
