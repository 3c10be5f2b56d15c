package scoutserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minsuk/vidscout/internal/engine"
	"github.com/minsuk/vidscout/internal/engine/videos"
	"github.com/minsuk/vidscout/internal/toolutil"
)

func registerVideoSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_search",
		Description: "Search YouTube videos with filters (recency window, duration, channel/word include/exclude, Creative Commons, demographic bracket). Returns structured JSON records sorted by views or date, deduplicated by URL, with an API quota estimate.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SearchRequest) (*mcp.CallToolResult, engine.VideoSearchOutput, error) {
		out, err := videoSearch(ctx, input)
		if err != nil {
			return nil, engine.VideoSearchOutput{}, err
		}
		return nil, out, nil
	})
}

func videoSearch(ctx context.Context, input engine.SearchRequest) (engine.VideoSearchOutput, error) {
	if input.Query == "" {
		return engine.VideoSearchOutput{}, errors.New("query is required")
	}
	if input.FetchTotal == 0 {
		input.FetchTotal = 100
	}
	input.AgeTag = toolutil.NormAgeTag(input.AgeTag)
	input.RegionCode = toolutil.NormRegion(input.RegionCode)

	sess.RecordSearch(input.Query)

	results, err := videos.Search(ctx, sess, input)
	if err != nil {
		return engine.VideoSearchOutput{}, err
	}
	return engine.VideoSearchOutput{
		Query:          input.Query,
		Total:          len(results),
		EstimatedUnits: engine.EstimateSearchUnits(input.FetchTotal),
		RecentSearches: sess.History(),
		Results:        results,
	}, nil
}
