package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

var fastRetry = RetryConfig{
	MaxRetries:  3,
	InitialWait: time.Millisecond,
	MaxWait:     5 * time.Millisecond,
	Multiplier:  2.0,
}

func TestRetryHTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("passes through a good response", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		resp, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
			return http.Get(srv.URL)
		})
		if err != nil {
			t.Fatalf("RetryHTTP: %v", err)
		}
		resp.Body.Close()
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1", calls.Load())
		}
	})

	t.Run("retries transient statuses until success", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		resp, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
			return http.Get(srv.URL)
		})
		if err != nil {
			t.Fatalf("RetryHTTP: %v", err)
		}
		resp.Body.Close()
		if calls.Load() != 3 {
			t.Errorf("calls = %d, want 3", calls.Load())
		}
	})

	t.Run("hands non-retryable statuses to the caller", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		resp, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
			return http.Get(srv.URL)
		})
		if err != nil {
			t.Fatalf("RetryHTTP: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden || calls.Load() != 1 {
			t.Errorf("status %d after %d calls, want one 403", resp.StatusCode, calls.Load())
		}
	})

	t.Run("gives up after the attempts run out", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
			return http.Get(srv.URL)
		})
		if err == nil || !strings.Contains(err.Error(), "502") {
			t.Fatalf("err = %v, want a 502 status error", err)
		}
		if calls.Load() != int32(fastRetry.MaxRetries)+1 {
			t.Errorf("calls = %d, want %d", calls.Load(), fastRetry.MaxRetries+1)
		}
	})

	t.Run("does not retry plain errors", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		_, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
			calls++
			return nil, boom
		})
		if !errors.Is(err, boom) || calls != 1 {
			t.Errorf("err = %v after %d calls, want boom after 1", err, calls)
		}
	})

	t.Run("retries connection errors", func(t *testing.T) {
		calls := 0
		opErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		_, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
			calls++
			return nil, opErr
		})
		var got *net.OpError
		if !errors.As(err, &got) {
			t.Errorf("err = %v, want the connection error back", err)
		}
		if calls != fastRetry.MaxRetries+1 {
			t.Errorf("calls = %d, want %d", calls, fastRetry.MaxRetries+1)
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := RetryHTTP(cctx, fastRetry, func() (*http.Response, error) {
			t.Error("fn should not run with a cancelled context")
			return nil, nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestReadBody(t *testing.T) {
	mkResp := func(body io.Reader, encoding string) *http.Response {
		h := http.Header{}
		if encoding != "" {
			h.Set("Content-Encoding", encoding)
		}
		return &http.Response{Header: h, Body: io.NopCloser(body)}
	}

	t.Run("plain body", func(t *testing.T) {
		got, err := ReadBody(mkResp(strings.NewReader("hello"), ""), 0)
		if err != nil || string(got) != "hello" {
			t.Errorf("got %q, err %v", got, err)
		}
	})

	t.Run("gzip body", func(t *testing.T) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		io.WriteString(gz, `{"ok":true}`)
		gz.Close()

		got, err := ReadBody(mkResp(&buf, "gzip"), 0)
		if err != nil || string(got) != `{"ok":true}` {
			t.Errorf("got %q, err %v", got, err)
		}
	})

	t.Run("limit caps raw bytes", func(t *testing.T) {
		got, err := ReadBody(mkResp(strings.NewReader("truncate me"), ""), 8)
		if err != nil || string(got) != "truncate" {
			t.Errorf("got %q, err %v", got, err)
		}
	})
}

func TestIsRetryableStatus(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		if !isRetryableStatus(code) {
			t.Errorf("isRetryableStatus(%d) = false", code)
		}
	}
	for _, code := range []int{200, 204, 301, 400, 401, 403, 404} {
		if isRetryableStatus(code) {
			t.Errorf("isRetryableStatus(%d) = true", code)
		}
	}
}
