// Package videos holds the aggregation pipelines built on the engine's API
// clients: search, trending recommendations, the keyword board, source
// tracing, and video analysis.
package videos

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/minsuk/vidscout/internal/engine"
)

const detailBatchSize = 50

// Search runs the full search pipeline: paginate search.list until the
// clamped target is reached, dedup IDs, hydrate details in batches of 50,
// apply the request's filters conjunctively, sort, apply the demographic
// gate, and dedup by URL. Results are cached on the full request.
func Search(ctx context.Context, sess *engine.Session, req engine.SearchRequest) ([]engine.VideoRecord, error) {
	if req.FetchTotal < 1 {
		req.FetchTotal = 1
	}
	if req.FetchTotal > engine.MaxFetchTotal {
		req.FetchTotal = engine.MaxFetchTotal
	}

	cacheKey := req.Key()
	if cached, ok := engine.CacheLoadJSON[[]engine.VideoRecord](ctx, cacheKey); ok {
		return cached, nil
	}

	ids, err := collectIDs(ctx, sess, req)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	recs, err := hydrate(ctx, sess, ids, req)
	if err != nil {
		return nil, err
	}

	sortByOrder(recs, req.Order)
	recs = demographicFilter(recs, req.AgeTag, false)
	recs = dedupByURL(recs)

	engine.CacheStoreJSON(ctx, cacheKey, recs, engine.SearchCacheTTL)
	slog.Debug("videos: search complete",
		slog.String("query", req.Query), slog.Int("results", len(recs)))
	return recs, nil
}

// collectIDs pages search.list until fetchTotal IDs are gathered or the
// result set is exhausted. IDs keep first-seen order.
func collectIDs(ctx context.Context, sess *engine.Session, req engine.SearchRequest) ([]string, error) {
	var ids []string
	token := ""
	for len(ids) < req.FetchTotal {
		pageIDs, next, err := engine.SearchPageIDs(ctx, sess, req, token)
		if err != nil {
			return nil, err
		}
		if len(pageIDs) == 0 {
			break
		}
		ids = append(ids, pageIDs...)
		if next == "" {
			break
		}
		token = next
	}

	seen := make(map[string]struct{}, len(ids))
	deduped := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	if len(deduped) > req.FetchTotal {
		deduped = deduped[:req.FetchTotal]
	}
	return deduped, nil
}

// hydrate fetches details for the IDs in batches of 50 and keeps records
// that pass every filter. A politeness wait separates batches.
func hydrate(ctx context.Context, sess *engine.Session, ids []string, req engine.SearchRequest) ([]engine.VideoRecord, error) {
	lim := rate.NewLimiter(rate.Every(engine.Cfg.DetailBatchInterval), 1)

	var out []engine.VideoRecord
	for i := 0; i < len(ids); i += detailBatchSize {
		if err := lim.Wait(ctx); err != nil {
			return nil, err
		}
		end := i + detailBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		details, err := engine.VideoDetails(ctx, sess, ids[i:end])
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			rec := RecordFromDetail(d)
			if !passesFilters(&rec, &req) {
				continue
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// RecordFromDetail converts a raw videos.list item into a VideoRecord,
// deriving duration, shorts status and the watch URL.
func RecordFromDetail(d engine.VideoDetail) engine.VideoRecord {
	seconds := engine.ParseISODuration(d.Duration)
	rec := engine.VideoRecord{
		Platform:        "youtube",
		Title:           d.Title,
		Author:          d.ChannelTitle,
		ChannelID:       d.ChannelID,
		URL:             engine.WatchURL(d.VideoID),
		VideoID:         d.VideoID,
		ThumbnailURL:    d.Thumbnail,
		PublishedAt:     d.PublishedAt,
		DurationSeconds: seconds,
		DurationText:    engine.DurationText(seconds),
		IsShorts:        seconds > 0 && seconds <= 60,
		Description:     d.Description,
	}
	if d.ViewCount != "" {
		v := engine.ParseCount(d.ViewCount)
		rec.Views = &v
		rec.ViewsText = engine.FormatCount(v)
	}
	return rec
}

// passesFilters applies every request filter conjunctively. Empty filters
// always pass.
func passesFilters(rec *engine.VideoRecord, req *engine.SearchRequest) bool {
	if len(req.IncludeChannels) > 0 && !containsFold(req.IncludeChannels, rec.Author) {
		return false
	}
	if containsFold(req.ExcludeChannels, rec.Author) {
		return false
	}
	if len(req.IncludeChannelIDs) > 0 && !containsExact(req.IncludeChannelIDs, rec.ChannelID) {
		return false
	}
	if containsExact(req.ExcludeChannelIDs, rec.ChannelID) {
		return false
	}

	title := strings.ToLower(rec.Title)
	for _, w := range req.IncludeWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" && !strings.Contains(title, w) {
			return false
		}
	}
	for _, w := range req.ExcludeWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" && strings.Contains(title, w) {
			return false
		}
	}

	if req.MinSeconds > 0 && rec.DurationSeconds < req.MinSeconds {
		return false
	}
	if req.MaxSeconds > 0 && rec.DurationSeconds > req.MaxSeconds {
		return false
	}
	return true
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}

func containsExact(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortByOrder sorts by publish date for order=date, otherwise by view count
// descending. Records without statistics sort below zero-view records.
func sortByOrder(recs []engine.VideoRecord, order string) {
	if order == "date" {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].PublishedAt > recs[j].PublishedAt
		})
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].ViewsOr(-1) > recs[j].ViewsOr(-1)
	})
}

// demographicFilter gates records through the bracket's blacklist, attaches
// relevance scores, drops zero-score records, and re-sorts by (ageScore,
// views) or (ageScore, engagement) descending. tag "all" or an unknown tag
// passes everything through untouched.
func demographicFilter(recs []engine.VideoRecord, tag string, byEngagement bool) []engine.VideoRecord {
	if tag == "" || tag == engine.AgeAll || !engine.ValidAgeTag(tag) {
		return recs
	}
	kept := recs[:0]
	for _, r := range recs {
		if engine.AgeNegativeHit(r.Title, tag) {
			continue
		}
		r.AgeScore = engine.AgeRelevanceScore(r.Title, tag)
		if r.AgeScore == 0 {
			continue
		}
		kept = append(kept, r)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].AgeScore != kept[j].AgeScore {
			return kept[i].AgeScore > kept[j].AgeScore
		}
		if byEngagement {
			return kept[i].EngagementScore > kept[j].EngagementScore
		}
		return kept[i].ViewsOr(0) > kept[j].ViewsOr(0)
	})
	return kept
}

func dedupByURL(recs []engine.VideoRecord) []engine.VideoRecord {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}
	return out
}
