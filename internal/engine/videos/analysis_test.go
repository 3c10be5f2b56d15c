package videos

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/minsuk/vidscout/internal/engine"
)

func TestChunkTranscript(t *testing.T) {
	t.Run("breaks at line boundaries", func(t *testing.T) {
		sections := chunkTranscript("aaaa\nbbbb\ncccc", 10)
		if len(sections) != 2 {
			t.Fatalf("got %d sections: %+v", len(sections), sections)
		}
		if sections[0].Text != "aaaa bbbb" || sections[0].Index != 1 {
			t.Errorf("section 1 = %+v", sections[0])
		}
		if sections[1].Text != "cccc" || sections[1].Index != 2 {
			t.Errorf("section 2 = %+v", sections[1])
		}
	})

	t.Run("oversize line kept whole", func(t *testing.T) {
		sections := chunkTranscript("xxxxxxxxxxxx", 5)
		if len(sections) != 1 || sections[0].Text != "xxxxxxxxxxxx" {
			t.Errorf("sections = %+v", sections)
		}
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		// Two 4-rune Hangul lines fit a 9-rune budget together.
		sections := chunkTranscript("가나다라\n마바사아", 9)
		if len(sections) != 1 || sections[0].Text != "가나다라 마바사아" {
			t.Errorf("sections = %+v", sections)
		}
	})
}

func TestTranscriptKeywords(t *testing.T) {
	got := transcriptKeywords("버터 버터 버터 설탕 설탕 소금 그리고 a", 2)
	if len(got) != 2 || got[0] != "버터" || got[1] != "설탕" {
		t.Errorf("got %v, want [버터 설탕]", got)
	}
	if got := transcriptKeywords("", 5); got != nil {
		t.Errorf("empty transcript: got %v", got)
	}
}

func TestHeuristicSeeds(t *testing.T) {
	t.Run("with transcript keywords", func(t *testing.T) {
		script, prompt := heuristicSeeds("5분 버터 쿠키", "버터 버터 설탕 설탕 소금")
		if !strings.HasPrefix(script, "후킹: 5분 버터 쿠키? ") {
			t.Errorf("script hook = %q", script)
		}
		if !strings.Contains(script, "키워드: 버터, 설탕, 소금") {
			t.Errorf("script solution = %q", script)
		}
		if !strings.Contains(script, "CTA: ") {
			t.Errorf("script has no CTA: %q", script)
		}
		if !strings.Contains(prompt, `"5분 버터 쿠키"`) || !strings.Contains(prompt, "버터, 설탕, 소금") {
			t.Errorf("image prompt = %q", prompt)
		}
	})

	t.Run("without signals falls back to defaults", func(t *testing.T) {
		script, prompt := heuristicSeeds("", "")
		if !strings.HasPrefix(script, "후킹: 핵심만") {
			t.Errorf("script = %q", script)
		}
		if !strings.Contains(prompt, "간결/선명/집중") {
			t.Errorf("image prompt = %q", prompt)
		}
	})

	t.Run("long title truncated in the hook", func(t *testing.T) {
		long := strings.Repeat("가", 60)
		script, _ := heuristicSeeds(long, "")
		if !strings.HasPrefix(script, "후킹: "+strings.Repeat("가", 40)+"? ") {
			t.Errorf("script = %q", script)
		}
	})
}

func TestAnalyzeUnknownVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	t.Cleanup(srv.Close)
	engine.Init(engine.Config{
		YouTubeAPIKeys: []string{"k1"},
		YouTubeAPIBase: srv.URL,
		HTTPClient:     srv.Client(),
	})
	engine.InitCache("", 100, 5*time.Minute)

	_, err := Analyze(context.Background(), engine.NewSession(), "nope123")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not-found", err)
	}
}
