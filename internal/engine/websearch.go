package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Google Custom Search client, used by source tracing to find candidate
// original uploads on other platforms.

type cseResp struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// SearchWeb issues one CSE query and returns up to num (≤10) results.
// Requires CSE_API_KEY and CSE_CX; results are cached briefly since trace
// runs repeat near-identical site-scoped queries.
func SearchWeb(ctx context.Context, query string, num int) ([]WebResult, error) {
	if Cfg.CSEAPIKey == "" || Cfg.CSECX == "" {
		return nil, ErrNoSearchKeys
	}
	if num < 1 || num > 10 {
		num = 10
	}

	cacheKey := CacheKey("web_search", query, strconv.Itoa(num))
	if cached, ok := CacheLoadJSON[[]WebResult](ctx, cacheKey); ok {
		return cached, nil
	}

	IncrCSE()

	params := url.Values{}
	params.Set("key", Cfg.CSEAPIKey)
	params.Set("cx", Cfg.CSECX)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	params.Set("safe", "off")
	params.Set("hl", "ko")

	apiURL := Cfg.CSEAPIBase + "?" + params.Encode()
	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", UserAgent)
		return Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search API status %d", resp.StatusCode)
	}

	var data cseResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode web search response: %w", err)
	}

	results := make([]WebResult, 0, len(data.Items))
	for _, it := range data.Items {
		if it.Link == "" {
			continue
		}
		results = append(results, WebResult{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
	}

	CacheStoreJSON(ctx, cacheKey, results, WebSearchCacheTTL)
	return results, nil
}
