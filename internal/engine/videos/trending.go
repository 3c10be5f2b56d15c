package videos

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/minsuk/vidscout/internal/engine"
)

const (
	defaultTrendingPool = 200
	minRecoCandidates   = 12  // fewer than this triggers the fallback search
	fallbackPerSeed     = 30  // fetchTotal per seed query in the fallback
	fallbackCap         = 200 // max merged fallback results
)

type trendingEntry struct {
	Results  []engine.VideoRecord `json:"results"`
	Degraded []string             `json:"degraded,omitempty"`
}

// Trending fetches the mostPopular chart for a region, scores engagement,
// applies the demographic gate, then samples from the top of the pool with
// a seeded shuffle so repeat calls vary. Chart failures mid-pagination stop
// collection gracefully and are reported as degradations, never as errors.
func Trending(ctx context.Context, sess *engine.Session, req engine.TrendingRequest) ([]engine.VideoRecord, []string) {
	region := req.RegionCode
	if region == "" {
		region = engine.Cfg.DefaultRegion
	}
	fetchTotal := req.FetchTotal
	if fetchTotal <= 0 {
		fetchTotal = defaultTrendingPool
	}
	if fetchTotal > engine.MaxFetchTotal {
		fetchTotal = engine.MaxFetchTotal
	}

	cacheKey := engine.CacheKey("trending", region,
		strconv.Itoa(fetchTotal), req.Order, req.AgeTag, strconv.FormatInt(req.Seed, 10))
	if cached, ok := engine.CacheLoadJSON[trendingEntry](ctx, cacheKey); ok {
		return cached.Results, cached.Degraded
	}

	var degraded []string
	var collected []engine.VideoRecord
	token := ""
	for len(collected) < fetchTotal {
		details, next, err := engine.TrendingPage(ctx, sess, region, token)
		if err != nil {
			slog.Warn("videos: trending chart fetch failed, keeping partial results",
				slog.String("region", region), slog.Any("error", err))
			degraded = append(degraded, "trending chart fetch failed: "+err.Error())
			break
		}
		if len(details) == 0 {
			break
		}
		for _, d := range details {
			rec := RecordFromDetail(d)
			rec.EngagementScore = engine.EngagementScore(d.ViewCount, d.LikeCount, d.CommentCount)
			collected = append(collected, rec)
		}
		if next == "" {
			break
		}
		token = next
	}

	sortByOrder(collected, req.Order)
	collected = demographicFilter(collected, req.AgeTag, true)
	if len(collected) == 0 {
		return nil, degraded
	}

	poolSize := int(float64(len(collected)) * 0.6)
	if poolSize < 40 {
		poolSize = 40
	}
	if poolSize > len(collected) {
		poolSize = len(collected)
	}
	pool := collected[:poolSize]

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	// Return 60 to 120 items, bounded by pool size.
	if len(pool) > 120 {
		pool = pool[:120]
	}

	engine.CacheStoreJSON(ctx, cacheKey, trendingEntry{Results: pool, Degraded: degraded}, engine.TrendingCacheTTL)
	return pool, degraded
}

// Recommendations wraps Trending with a fallback: when the chart yields
// fewer than 12 candidates for the bracket, seed-keyword searches replace
// the chart output entirely.
func Recommendations(ctx context.Context, sess *engine.Session, req engine.TrendingRequest) engine.TrendingOutput {
	region := req.RegionCode
	if region == "" {
		region = engine.Cfg.DefaultRegion
	}

	results, degraded := Trending(ctx, sess, req)
	fallbackUsed := false
	if len(results) < minRecoCandidates {
		results = fallbackRecommendations(ctx, sess, req.AgeTag, region)
		fallbackUsed = true
	}

	return engine.TrendingOutput{
		Total:        len(results),
		FallbackUsed: fallbackUsed,
		Degraded:     degraded,
		Results:      results,
	}
}

// fallbackRecommendations runs one seed-query search per bracket keyword
// and merges the results. Individual query failures are skipped; the
// fallback itself never errors.
func fallbackRecommendations(ctx context.Context, sess *engine.Session, ageTag, region string) []engine.VideoRecord {
	var gathered []engine.VideoRecord
	for _, q := range engine.SeedQueries(ageTag, 8) {
		res, err := Search(ctx, sess, engine.SearchRequest{
			Query:        q,
			FetchTotal:   fallbackPerSeed,
			UploadWindow: "1y",
			RegionCode:   region,
			SafeSearch:   "moderate",
			Order:        "viewCount",
			AgeTag:       ageTag,
		})
		if err != nil {
			slog.Warn("videos: fallback seed search failed",
				slog.String("query", q), slog.Any("error", err))
			continue
		}
		gathered = append(gathered, res...)
	}

	gathered = dedupByURL(gathered)
	sort.SliceStable(gathered, func(i, j int) bool {
		return gathered[i].ViewsOr(0) > gathered[j].ViewsOr(0)
	})
	if len(gathered) > fallbackCap {
		gathered = gathered[:fallbackCap]
	}
	return gathered
}
