package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestSearchWeb(t *testing.T) {
	ctx := context.Background()

	t.Run("requires credentials", func(t *testing.T) {
		Init(Config{})
		InitCache("", 100, 5*time.Minute)
		_, err := SearchWeb(ctx, "anything", 10)
		if !errors.Is(err, ErrNoSearchKeys) {
			t.Errorf("err = %v, want ErrNoSearchKeys", err)
		}
	})

	t.Run("returns and caches results", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if got := r.URL.Query().Get("cx"); got != "cx-1" {
				t.Errorf("cx = %q", got)
			}
			fmt.Fprint(w, `{"items":[
				{"title":"TikTok clip","link":"https://www.tiktok.com/@user/video/1","snippet":"original"},
				{"title":"no link","link":"","snippet":"dropped"}
			]}`)
		}))
		t.Cleanup(srv.Close)
		Init(Config{CSEAPIKey: "key-1", CSECX: "cx-1", CSEAPIBase: srv.URL, HTTPClient: srv.Client()})
		InitCache("", 100, 5*time.Minute)

		results, err := SearchWeb(ctx, "@user site:tiktok.com", 10)
		if err != nil {
			t.Fatalf("SearchWeb: %v", err)
		}
		if len(results) != 1 || results[0].Link != "https://www.tiktok.com/@user/video/1" {
			t.Errorf("results = %+v", results)
		}

		// Second identical query is served from cache.
		if _, err := SearchWeb(ctx, "@user site:tiktok.com", 10); err != nil {
			t.Fatal(err)
		}
		if hits.Load() != 1 {
			t.Errorf("server hits = %d, want 1", hits.Load())
		}
	})
}
