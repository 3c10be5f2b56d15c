package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"
)

// HTTP plumbing shared by the API clients (YouTube, CSE, DeepL/MyMemory,
// timedtext): bounded exponential backoff over transient failures, and
// gzip-aware body draining.

// RetryConfig controls the backoff loop.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig is suitable for most HTTP calls.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  3,
	InitialWait: 700 * time.Millisecond,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

// RetryHTTP sends the request built by fn until it yields a non-retryable
// outcome. Transient statuses (429, 5xx) and connection-level failures are
// retried with backoff; any other response, including API-level rejections
// such as quota 403s, is handed back for the caller to classify.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, err := fn()
		switch {
		case err == nil && !isRetryableStatus(resp.StatusCode):
			return resp, nil
		case err == nil:
			resp.Body.Close()
			lastErr = &httpStatusError{StatusCode: resp.StatusCode}
		case isRetryable(err):
			lastErr = err
		default:
			return nil, err
		}

		if attempt < rc.MaxRetries {
			wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
			if wait > rc.MaxWait {
				wait = rc.MaxWait
			}
			slog.Debug("retrying", slog.Int("attempt", attempt+1), slog.Duration("wait", wait), slog.Any("error", lastErr))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// ReadBody drains a response body. The transport only gunzips automatically
// when it negotiated the encoding itself, so a client that set
// Accept-Encoding explicitly gets the compressed stream; ReadBody covers
// that case by checking Content-Encoding. limit > 0 caps the raw bytes read.
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

// httpStatusError names the retryable status still failing after the
// attempts run out.
type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// isRetryable reports whether a request-level error is worth retrying:
// connection failures, DNS errors, and timeouts.
func isRetryable(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// net.Error includes OpError, so check it after.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// isRetryableStatus reports HTTP status codes worth retrying.
func isRetryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}
