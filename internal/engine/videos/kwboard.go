package videos

import (
	"context"
	"log/slog"

	"github.com/minsuk/vidscout/internal/engine"
)

const (
	boardSeedCount  = 8
	boardFetchTotal = 120
)

// KeywordBoard builds a per-keyword ranking board for a demographic
// bracket: one search per seed keyword, demographically filtered, first
// perKeyword results kept. A failing keyword yields an empty column and
// never aborts the rest of the board.
func KeywordBoard(ctx context.Context, sess *engine.Session, ageTag, region string, perKeyword int) map[string][]engine.VideoRecord {
	if perKeyword <= 0 {
		perKeyword = 6
	}
	if region == "" {
		region = engine.Cfg.DefaultRegion
	}

	keywords := engine.SeedQueries(ageTag, boardSeedCount)
	board := make(map[string][]engine.VideoRecord, len(keywords))
	for _, kw := range keywords {
		rows, err := Search(ctx, sess, engine.SearchRequest{
			Query:        kw,
			FetchTotal:   boardFetchTotal,
			UploadWindow: "1y",
			RegionCode:   region,
			SafeSearch:   "moderate",
			Order:        "viewCount",
			AgeTag:       ageTag,
		})
		if err != nil {
			slog.Warn("videos: board keyword search failed",
				slog.String("keyword", kw), slog.Any("error", err))
			board[kw] = []engine.VideoRecord{}
			continue
		}
		if len(rows) > perKeyword {
			rows = rows[:perKeyword]
		}
		board[kw] = rows
	}
	return board
}
