package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// YouTube Data API v3 client with key rotation. The key pool is loaded once
// at startup; the rotation pointer lives on the Session so rotation starts
// from the key that last succeeded instead of index 0.

const (
	MaxFetchTotal = 500 // hard cap on one pipeline's target result count
	pageSize      = 50  // API maximum per page
)

// ytErrorResp is the API error envelope, used to pick out the quota reason.
type ytErrorResp struct {
	Error struct {
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func quotaReason(body []byte) string {
	var er ytErrorResp
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	if len(er.Error.Errors) == 0 {
		return ""
	}
	return er.Error.Errors[0].Reason
}

// ytGet performs one logical YouTube API call, rotating through the key pool
// on quota or auth failures. Each key is tried at most once, starting from
// the session's last-known-good index and wrapping around. On success the
// winning index becomes the session's new starting point.
//
// Returns ErrNoAPIKeys for an empty pool, a QuotaError when every key was
// rejected with quotaExceeded, and otherwise the last error encountered.
func ytGet(ctx context.Context, sess *Session, endpoint string, params url.Values, out any) error {
	keys := Cfg.YouTubeAPIKeys
	if len(keys) == 0 {
		return ErrNoAPIKeys
	}

	var lastErr error
	quotaHits := 0
	start := sess.KeyIndex()

	for offset := 0; offset < len(keys); offset++ {
		idx := (start + offset) % len(keys)

		p := url.Values{}
		for k, vs := range params {
			p[k] = vs
		}
		p.Set("key", keys[idx])
		apiURL := Cfg.YouTubeAPIBase + endpoint + "?" + p.Encode()

		resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", UserAgent)
			req.Header.Set("Accept-Encoding", "gzip")
			return Cfg.HTTPClient.Do(req)
		})
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusForbidden {
			body, _ := ReadBody(resp, 4096)
			resp.Body.Close()
			if quotaReason(body) == "quotaExceeded" {
				quotaHits++
				IncrKeyRotation()
				slog.Warn("youtube: key quota exhausted, rotating",
					slog.Int("index", idx), slog.Int("pool", len(keys)))
				lastErr = fmt.Errorf("youtube API key #%d: quotaExceeded", idx+1)
				continue
			}
			lastErr = fmt.Errorf("youtube API %d: %s", resp.StatusCode, Truncate(string(body), 256))
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := ReadBody(resp, 512)
			resp.Body.Close()
			lastErr = fmt.Errorf("youtube API %d: %s", resp.StatusCode, string(body))
			continue
		}

		body, err := ReadBody(resp, 0)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("read youtube API response: %w", err)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode youtube API response: %w", err)
		}
		sess.SetKeyIndex(idx)
		return nil
	}

	if quotaHits == len(keys) {
		return &QuotaError{Keys: len(keys), Err: lastErr}
	}
	return lastErr
}

// --- search.list ---

type ytSearchResp struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// SearchPageIDs fetches one page of search.list video IDs for req.
// Returns the IDs, the next page token ("" when exhausted), and any error.
func SearchPageIDs(ctx context.Context, sess *Session, req SearchRequest, pageToken string) ([]string, string, error) {
	IncrSearchPage()

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", req.Query)
	params.Set("maxResults", strconv.Itoa(pageSize))
	params.Set("type", "video")
	order := req.Order
	if order == "" {
		order = "viewCount"
	}
	params.Set("order", order)
	if req.CCOnly {
		params.Set("videoLicense", "creativeCommon")
	}
	if req.RegionCode != "" {
		params.Set("regionCode", req.RegionCode)
	}
	if req.RelevanceLanguage != "" {
		params.Set("relevanceLanguage", req.RelevanceLanguage)
	}
	// Unknown enum values are dropped, not rejected.
	switch req.SafeSearch {
	case "none", "moderate", "strict":
		params.Set("safeSearch", req.SafeSearch)
	}
	switch req.DurationBucket {
	case "short", "medium", "long":
		params.Set("videoDuration", req.DurationBucket)
	}
	if after := PublishedAfter(req.UploadWindow); after != "" {
		params.Set("publishedAfter", after)
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp ytSearchResp
	if err := ytGet(ctx, sess, "/search", params, &resp); err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	return ids, resp.NextPageToken, nil
}

// --- videos.list ---

type ytVideosResp struct {
	NextPageToken string       `json:"nextPageToken"`
	Items         []ytVideoItem `json:"items"`
}

type ytVideoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
		ChannelID    string `json:"channelId"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   map[string]ytThumb `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type ytThumb struct {
	URL string `json:"url"`
}

// bestThumbnail prefers high → medium → default resolution.
func bestThumbnail(thumbs map[string]ytThumb) string {
	for _, k := range []string{"high", "medium", "default"} {
		if t, ok := thumbs[k]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

func detailFromItem(v ytVideoItem) VideoDetail {
	return VideoDetail{
		VideoID:      v.ID,
		Title:        v.Snippet.Title,
		ChannelTitle: v.Snippet.ChannelTitle,
		ChannelID:    v.Snippet.ChannelID,
		Description:  v.Snippet.Description,
		PublishedAt:  v.Snippet.PublishedAt,
		Thumbnail:    bestThumbnail(v.Snippet.Thumbnails),
		Duration:     v.ContentDetails.Duration,
		ViewCount:    v.Statistics.ViewCount,
		LikeCount:    v.Statistics.LikeCount,
		CommentCount: v.Statistics.CommentCount,
	}
}

// VideoDetails fetches snippet+statistics+contentDetails for up to 50 IDs.
func VideoDetails(ctx context.Context, sess *Session, ids []string) ([]VideoDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	IncrVideoDetail()

	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(ids, ","))

	var resp ytVideosResp
	if err := ytGet(ctx, sess, "/videos", params, &resp); err != nil {
		return nil, err
	}

	details := make([]VideoDetail, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v.ID == "" {
			continue
		}
		details = append(details, detailFromItem(v))
	}
	return details, nil
}

// TrendingPage fetches one page of the mostPopular chart for a region.
func TrendingPage(ctx context.Context, sess *Session, region, pageToken string) ([]VideoDetail, string, error) {
	IncrTrending()

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", region)
	params.Set("maxResults", strconv.Itoa(pageSize))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp ytVideosResp
	if err := ytGet(ctx, sess, "/videos", params, &resp); err != nil {
		return nil, "", err
	}

	details := make([]VideoDetail, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v.ID == "" {
			continue
		}
		details = append(details, detailFromItem(v))
	}
	return details, resp.NextPageToken, nil
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
