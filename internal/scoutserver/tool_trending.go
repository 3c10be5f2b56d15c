package scoutserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minsuk/vidscout/internal/engine"
	"github.com/minsuk/vidscout/internal/engine/videos"
	"github.com/minsuk/vidscout/internal/toolutil"
)

func registerTrendingRecos(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "trending_recos",
		Description: "Recommend videos from the YouTube trending chart for a region and demographic bracket, ranked by engagement with a seeded shuffle. Falls back to seed-keyword searches when the chart yields too few bracket matches. Degradations are reported in the response.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TrendingRequest) (*mcp.CallToolResult, engine.TrendingOutput, error) {
		input.AgeTag = toolutil.NormAgeTag(input.AgeTag)
		input.RegionCode = toolutil.NormRegion(input.RegionCode)
		if input.FetchTotal <= 0 {
			input.FetchTotal = 200
		}

		out := videos.Recommendations(ctx, sess, input)
		out.EstimatedUnits = engine.EstimateTrendingUnits(input.FetchTotal)
		if out.FallbackUsed {
			out.EstimatedUnits += 8 * engine.EstimateSearchUnits(30)
		}
		return nil, out, nil
	})
}
