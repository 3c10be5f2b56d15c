package scoutserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minsuk/vidscout/internal/engine"
	"github.com/minsuk/vidscout/internal/engine/videos"
)

func registerSourceTrace(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "source_trace",
		Description: "Trace a shorts video back to its likely origin: extracts @handles, numeric hashtags and keyphrases from the title, description and thumbnail OCR, then searches short-form platforms (TikTok, Instagram, X, ...) and ranks candidate pages. Shorts only.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SourceTraceInput) (*mcp.CallToolResult, engine.SourceTraceOutput, error) {
		if input.VideoID == "" {
			return nil, engine.SourceTraceOutput{}, errors.New("video_id is required")
		}

		rec, err := lookupRecord(ctx, input.VideoID)
		if err != nil {
			return nil, engine.SourceTraceOutput{}, err
		}
		if !rec.IsShorts {
			return nil, engine.SourceTraceOutput{}, fmt.Errorf("video %s is not a shorts video (%ds), source tracing covers shorts only", input.VideoID, rec.DurationSeconds)
		}

		out, err := videos.TraceSource(ctx, rec)
		if err != nil {
			return nil, engine.SourceTraceOutput{}, err
		}
		return nil, out, nil
	})
}
