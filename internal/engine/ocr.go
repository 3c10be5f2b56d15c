package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Thumbnail OCR. The OCR engine itself is an injected collaborator
// (Config.OCR); this file only fetches the image bytes and degrades
// gracefully when OCR is disabled or failing.

const thumbFetchTimeout = 8 * time.Second

func fetchThumbnail(ctx context.Context, thumbURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, thumbFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := Cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("thumbnail fetch status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
}

// OCRThumbnail downloads a thumbnail and runs the configured OCR function
// over it. Returns "" when OCR is disabled or anything fails; thumbnail
// text is a bonus signal, never a requirement.
func OCRThumbnail(ctx context.Context, thumbURL string) string {
	if Cfg.OCR == nil || thumbURL == "" {
		return ""
	}
	IncrOCR()

	data, err := fetchThumbnail(ctx, thumbURL)
	if err != nil {
		slog.Debug("ocr: thumbnail fetch failed", slog.Any("error", err))
		return ""
	}
	text, err := Cfg.OCR(ctx, data)
	if err != nil {
		slog.Debug("ocr: extraction failed", slog.Any("error", err))
		return ""
	}
	return text
}
