package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Korean translation collaborator. Best-effort by contract: any failure
// returns the input text unchanged. DeepL is used when a key is configured,
// the keyless MyMemory API otherwise.

type deeplResp struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

type myMemoryResp struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// TranslateKorean translates text to Korean. Text that is empty or already
// contains Hangul is returned as-is.
func TranslateKorean(ctx context.Context, text string) string {
	if text == "" || HasHangul(text) {
		return text
	}
	IncrTranslate()

	if Cfg.DeepLAPIKey != "" {
		if out, err := translateDeepL(ctx, text); err == nil && out != "" {
			return out
		} else if err != nil {
			slog.Debug("translate: deepl failed, falling back", slog.Any("error", err))
		}
	}
	if out, err := translateMyMemory(ctx, text); err == nil && out != "" {
		return out
	} else if err != nil {
		slog.Debug("translate: mymemory failed", slog.Any("error", err))
	}
	return text
}

func translateDeepL(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("auth_key", Cfg.DeepLAPIKey)
	form.Set("text", text)
	form.Set("target_lang", "KO")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, Cfg.DeepLAPIBase, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := Cfg.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &httpStatusError{StatusCode: resp.StatusCode}
	}

	var data deeplResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if len(data.Translations) == 0 {
		return "", nil
	}
	return data.Translations[0].Text, nil
}

func translateMyMemory(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", "en|ko")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, Cfg.MyMemoryAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := Cfg.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &httpStatusError{StatusCode: resp.StatusCode}
	}

	var data myMemoryResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.ResponseData.TranslatedText, nil
}

var blockSplitRe = regexp.MustCompile(`\n{2,}`)

// TranslateBlock translates a multi-paragraph text block to Korean,
// paragraph by paragraph, pausing briefly between API calls. Paragraphs
// that fail keep their original text.
func TranslateBlock(ctx context.Context, text string) string {
	if text == "" {
		return text
	}
	parts := blockSplitRe.Split(text, -1)
	lim := rate.NewLimiter(rate.Every(100*time.Millisecond), 1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			out = append(out, p)
			continue
		}
		if err := lim.Wait(ctx); err != nil {
			out = append(out, p)
			continue
		}
		out = append(out, TranslateKorean(ctx, p))
	}
	return strings.Join(out, "\n\n")
}
