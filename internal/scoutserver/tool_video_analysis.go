package scoutserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minsuk/vidscout/internal/engine"
	"github.com/minsuk/vidscout/internal/engine/videos"
)

func registerVideoAnalysis(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_analysis",
		Description: "Analyze one YouTube video: fetches metadata and the transcript (Korean first, then English with translation to Korean), splits it into sections, and derives shorts-script and image-prompt seeds. Transcript failures degrade instead of erroring.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoAnalysisInput) (*mcp.CallToolResult, engine.VideoAnalysisOutput, error) {
		if input.VideoID == "" {
			return nil, engine.VideoAnalysisOutput{}, errors.New("video_id is required")
		}
		out, err := videos.Analyze(ctx, sess, input.VideoID)
		if err != nil {
			return nil, engine.VideoAnalysisOutput{}, err
		}
		return nil, out, nil
	})
}

// lookupRecord hydrates a single video ID into a full record.
func lookupRecord(ctx context.Context, videoID string) (engine.VideoRecord, error) {
	details, err := engine.VideoDetails(ctx, sess, []string{videoID})
	if err != nil {
		return engine.VideoRecord{}, err
	}
	if len(details) == 0 {
		return engine.VideoRecord{}, fmt.Errorf("video %s not found", videoID)
	}
	return videos.RecordFromDetail(details[0]), nil
}
