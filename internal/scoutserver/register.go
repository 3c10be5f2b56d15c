// Package scoutserver exposes the aggregation pipelines as MCP tools:
// video_search, trending_recos, keyword_board, source_trace, video_analysis.
package scoutserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minsuk/vidscout/internal/engine"
)

// sess is the server's session: key-rotation pointer and recent-search
// history shared by every tool call of this process.
var sess = engine.NewSession()

// RegisterTools registers all video aggregation tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerVideoSearch(server)
	registerTrendingRecos(server)
	registerKeywordBoard(server)
	registerSourceTrace(server)
	registerVideoAnalysis(server)
}
