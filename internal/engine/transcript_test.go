package engine

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1};var x=2`, `{"a":1}`},
		{"nested", `{"a":{"b":2}}tail`, `{"a":{"b":2}}`},
		{"braces in strings ignored", `{"a":"}{"}rest`, `{"a":"}{"}`},
		{"escaped quotes", `{"a":"say \"hi\" {"}x`, `{"a":"say \"hi\" {"}`},
		{"unterminated", `{"a":1`, ""},
		{"not an object", `[1,2]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(extractJSON([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPickCaptionTrack(t *testing.T) {
	manualKo := captionTrack{BaseURL: "https://yt/tt?lang=ko", LanguageCode: "ko"}
	asrKo := captionTrack{BaseURL: "https://yt/tt?lang=ko&kind=asr", LanguageCode: "ko", Kind: "asr"}
	manualEn := captionTrack{BaseURL: "https://yt/tt?lang=en", LanguageCode: "en"}
	poToken := captionTrack{BaseURL: "https://yt/tt?lang=ko&exp=xpe", LanguageCode: "ko"}

	t.Run("prefers manual in requested language", func(t *testing.T) {
		got, ok := pickCaptionTrack([]captionTrack{asrKo, manualEn, manualKo}, []string{"ko", "en"})
		if !ok || got != manualKo {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("falls back to asr in requested language", func(t *testing.T) {
		got, ok := pickCaptionTrack([]captionTrack{manualEn, asrKo}, []string{"ko"})
		if !ok || got != asrKo {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("english as last language resort", func(t *testing.T) {
		got, ok := pickCaptionTrack([]captionTrack{manualEn}, []string{"ko"})
		if !ok || got != manualEn {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("skips potoken-gated tracks", func(t *testing.T) {
		got, ok := pickCaptionTrack([]captionTrack{poToken, manualEn}, []string{"ko"})
		if !ok || got != manualEn {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("nothing usable", func(t *testing.T) {
		if _, ok := pickCaptionTrack([]captionTrack{poToken}, []string{"ko"}); ok {
			t.Error("expected no usable track")
		}
	})
}
