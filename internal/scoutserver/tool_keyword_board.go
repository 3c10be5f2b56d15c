package scoutserver

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minsuk/vidscout/internal/engine"
	"github.com/minsuk/vidscout/internal/engine/videos"
	"github.com/minsuk/vidscout/internal/toolutil"
)

func registerKeywordBoard(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "keyword_board",
		Description: "Build a per-keyword ranking board for a demographic bracket: up to 8 seed keywords, each searched over the last year and demographically filtered. A failing keyword yields an empty column instead of aborting the board.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.KeywordBoardInput) (*mcp.CallToolResult, engine.KeywordBoardOutput, error) {
		input.AgeTag = toolutil.NormAgeTag(input.AgeTag)
		input.RegionCode = toolutil.NormRegion(input.RegionCode)
		if input.PerKeyword <= 0 {
			input.PerKeyword = 6
		}

		cacheKey := engine.CacheKey("keyword_board", input.AgeTag, input.RegionCode,
			strconv.Itoa(input.PerKeyword))
		if out, ok := engine.CacheLoadJSON[engine.KeywordBoardOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		board := videos.KeywordBoard(ctx, sess, input.AgeTag, input.RegionCode, input.PerKeyword)
		out := engine.KeywordBoardOutput{
			AgeTag:         input.AgeTag,
			EstimatedUnits: engine.EstimateBoardUnits(len(board)),
			Board:          board,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out, engine.BoardCacheTTL)
		return nil, out, nil
	})
}
