// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient returns a Client with an effectively unlimited rate bucket
// and a recording sleep so tests never wait.
func newTestClient(attempts int) (*Client, *[]time.Duration) {
	c := New(Config{
		Timeout:     2 * time.Second,
		MaxAttempts: attempts,
		BackoffBase: 1 * time.Second,
		BackoffMax:  30 * time.Second,
		RateLimit:   1000,
		RateBurst:   1000,
	})

	sleeps := &[]time.Duration{}
	c.sleep = func(_ context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}
	return c, sleeps
}

func TestFetchSuccessFirstAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Asia/Kolkata"))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(3)

	result, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if !result.OK() {
		t.Errorf("expected 200, got %d", result.StatusCode)
	}
	if string(result.Body) != "Asia/Kolkata" {
		t.Errorf("expected body 'Asia/Kolkata', got %q", result.Body)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
	if len(*sleeps) != 0 {
		t.Errorf("expected no backoff sleeps, got %v", *sleeps)
	}
}

func TestFetchRateLimitedThenSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Europe/London"))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(3)

	result, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if string(result.Body) != "Europe/London" {
		t.Errorf("expected body 'Europe/London', got %q", result.Body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 requests, got %d", got)
	}

	// Two 429s mean exactly two waits, the second twice the first.
	if len(*sleeps) != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %v", *sleeps)
	}
	if (*sleeps)[0] != 1*time.Second {
		t.Errorf("expected first sleep of 1s, got %s", (*sleeps)[0])
	}
	if (*sleeps)[1] != 2*time.Second {
		t.Errorf("expected doubled second sleep of 2s, got %s", (*sleeps)[1])
	}
}

func TestFetchNonRetryableStatusReturnsImmediately(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusInternalServerError,
		http.StatusBadGateway,
	}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(status)
			}))
			defer srv.Close()

			c, sleeps := newTestClient(3)

			result, err := c.Fetch(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Fetch() failed: %v", err)
			}
			if result.StatusCode != status {
				t.Errorf("expected status %d, got %d", status, result.StatusCode)
			}
			if result.OK() {
				t.Error("expected OK() to be false")
			}
			if got := atomic.LoadInt32(&calls); got != 1 {
				t.Errorf("expected single request for status %d, got %d", status, got)
			}
			if len(*sleeps) != 0 {
				t.Errorf("expected no sleeps for status %d, got %v", status, *sleeps)
			}
		})
	}
}

func TestFetchRateLimitExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, sleeps := newTestClient(3)

	result, err := c.Fetch(context.Background(), srv.URL)
	if result != nil {
		t.Errorf("expected nil result on exhaustion, got %+v", result)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got: %v", err)
	}
	// The final failed attempt is not followed by a wait.
	if len(*sleeps) != 2 {
		t.Errorf("expected 2 sleeps for 3 attempts, got %v", *sleeps)
	}
}

func TestFetchTransportExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // every connection now fails

	c, sleeps := newTestClient(3)

	result, err := c.Fetch(context.Background(), url)
	if result != nil {
		t.Errorf("expected nil result on exhaustion, got %+v", result)
	}
	if err == nil {
		t.Fatal("expected transport error, got nil")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Errorf("transport exhaustion must not report ErrRateLimited: %v", err)
	}
	if len(*sleeps) != 2 {
		t.Errorf("expected 2 sleeps for 3 attempts, got %v", *sleeps)
	}
}

func TestFetchRetryAfterHeader(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, sleeps := newTestClient(3)

	if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if len(*sleeps) != 1 {
		t.Fatalf("expected 1 sleep, got %v", *sleeps)
	}
	if (*sleeps)[0] != 5*time.Second {
		t.Errorf("expected Retry-After wait of 5s, got %s", (*sleeps)[0])
	}
}

func TestFetchBackoffCeiling(t *testing.T) {
	c := New(Config{
		MaxAttempts: 5,
		BackoffBase: 4 * time.Second,
		BackoffMax:  6 * time.Second,
		RateLimit:   1000,
		RateBurst:   1000,
	})

	if got := c.nextDelay(4 * time.Second); got != 6*time.Second {
		t.Errorf("nextDelay(4s) = %s, want cap of 6s", got)
	}
	if got := c.nextDelay(6 * time.Second); got != 6*time.Second {
		t.Errorf("nextDelay(6s) = %s, want cap of 6s", got)
	}
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := newTestClient(3)
	c.sleep = sleepContext // real context-aware sleep

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	c := New(Config{})

	if c.maxAttempts != 3 {
		t.Errorf("expected default 3 attempts, got %d", c.maxAttempts)
	}
	if c.backoffBase != 1*time.Second {
		t.Errorf("expected default 1s base, got %s", c.backoffBase)
	}
	if c.backoffMax != 30*time.Second {
		t.Errorf("expected default 30s ceiling, got %s", c.backoffMax)
	}
	if c.userAgent == "" {
		t.Error("expected a default user agent")
	}
}

func TestNewCeilingNeverBelowBase(t *testing.T) {
	t.Parallel()

	c := New(Config{BackoffBase: 10 * time.Second, BackoffMax: 2 * time.Second})
	if c.backoffMax != 10*time.Second {
		t.Errorf("expected ceiling raised to base, got %s", c.backoffMax)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{UserAgent: "horologium-test/9.9", RateLimit: 1000, RateBurst: 1000})

	if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if gotUA != "horologium-test/9.9" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
}
