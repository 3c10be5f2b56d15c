package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTranslateKorean(t *testing.T) {
	ctx := context.Background()

	t.Run("hangul short-circuits", func(t *testing.T) {
		Init(Config{})
		in := "이미 한국어 제목"
		if got := TranslateKorean(ctx, in); got != in {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty short-circuits", func(t *testing.T) {
		Init(Config{})
		if got := TranslateKorean(ctx, ""); got != "" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("deepl when key configured", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.FormValue("target_lang"); got != "KO" {
				t.Errorf("target_lang = %q", got)
			}
			fmt.Fprint(w, `{"translations":[{"text":"놀라운 고양이 순간들"}]}`)
		}))
		t.Cleanup(srv.Close)
		Init(Config{DeepLAPIKey: "dl-key", DeepLAPIBase: srv.URL, HTTPClient: srv.Client()})

		if got := TranslateKorean(ctx, "Amazing cat moments"); got != "놀라운 고양이 순간들" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("falls back to mymemory when deepl fails", func(t *testing.T) {
		deepl := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(deepl.Close)
		mm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"responseData":{"translatedText":"대체 번역"}}`)
		}))
		t.Cleanup(mm.Close)
		Init(Config{DeepLAPIKey: "dl-key", DeepLAPIBase: deepl.URL, MyMemoryAPIBase: mm.URL, HTTPClient: http.DefaultClient})

		if got := TranslateKorean(ctx, "fallback please"); got != "대체 번역" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("degrades to input when everything fails", func(t *testing.T) {
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(down.Close)
		Init(Config{DeepLAPIBase: down.URL, MyMemoryAPIBase: down.URL, HTTPClient: down.Client()})

		if got := TranslateKorean(ctx, "stay as is"); got != "stay as is" {
			t.Errorf("got %q", got)
		}
	})
}

func TestTranslateBlock(t *testing.T) {
	mm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"responseData":{"translatedText":"KO(%s)"}}`, r.URL.Query().Get("q"))
	}))
	t.Cleanup(mm.Close)
	Init(Config{MyMemoryAPIBase: mm.URL, HTTPClient: mm.Client()})

	done := make(chan string, 1)
	go func() {
		done <- TranslateBlock(context.Background(), "first paragraph\n\nsecond paragraph")
	}()
	select {
	case got := <-done:
		if got != "KO(first paragraph)\n\nKO(second paragraph)" {
			t.Errorf("got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("TranslateBlock did not finish")
	}
}
