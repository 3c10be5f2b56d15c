package scoutserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minsuk/vidscout/internal/engine"
)

func TestVideoSearchCarriesSessionHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/search") {
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"vid-1"}}],"nextPageToken":""}`)
			return
		}
		fmt.Fprint(w, `{"items":[{
			"id":"vid-1",
			"snippet":{"title":"서울 브이로그","channelTitle":"채널","channelId":"UC1","publishedAt":"2025-06-01T00:00:00Z","thumbnails":{}},
			"statistics":{"viewCount":"1200","likeCount":"10","commentCount":"2"},
			"contentDetails":{"duration":"PT2M"}
		}]}`)
	}))
	t.Cleanup(srv.Close)
	engine.Init(engine.Config{
		YouTubeAPIKeys: []string{"k1"},
		YouTubeAPIBase: srv.URL,
		HTTPClient:     srv.Client(),
		DefaultRegion:  "KR",
	})
	engine.InitCache("", 100, 5*time.Minute)

	out1, err := videoSearch(context.Background(), engine.SearchRequest{Query: "먹방"})
	require.NoError(t, err)
	require.Equal(t, []string{"먹방"}, out1.RecentSearches)

	out2, err := videoSearch(context.Background(), engine.SearchRequest{Query: "캠핑"})
	require.NoError(t, err)
	require.Equal(t, []string{"먹방", "캠핑"}, out2.RecentSearches)

	require.Equal(t, 1, out2.Total)
	require.Equal(t, "1.2K", out2.Results[0].ViewsText)
}

func TestVideoSearchRequiresQuery(t *testing.T) {
	_, err := videoSearch(context.Background(), engine.SearchRequest{})
	require.Error(t, err)
}
