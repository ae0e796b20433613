// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/horologium/internal/fetch"
)

func newTestFetcher() *fetch.Client {
	return fetch.New(fetch.Config{
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		RateLimit:   1000,
		RateBurst:   1000,
	})
}

func TestPublicIPSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("203.0.113.7\n"))
	}))
	defer server.Close()

	d := New(newTestFetcher(), server.URL)
	ip := d.PublicIP(context.Background())

	if ip != "203.0.113.7" {
		t.Errorf("expected 203.0.113.7, got %q", ip)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls.Load())
	}
}

func TestPublicIPIPv6(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2001:db8::1"))
	}))
	defer server.Close()

	d := New(newTestFetcher(), server.URL)
	if ip := d.PublicIP(context.Background()); ip != "2001:db8::1" {
		t.Errorf("expected 2001:db8::1, got %q", ip)
	}
}

func TestPublicIPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	d := New(newTestFetcher(), server.URL)
	if ip := d.PublicIP(context.Background()); ip != "" {
		t.Errorf("expected empty IP on error status, got %q", ip)
	}
}

func TestPublicIPUnusableBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html error page", "<html><body>Service unavailable</body></html>"},
		{"empty body", ""},
		{"private address", "192.168.1.10"},
		{"loopback", "127.0.0.1"},
		{"unspecified", "0.0.0.0"},
		{"link local", "169.254.10.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			d := New(newTestFetcher(), server.URL)
			if ip := d.PublicIP(context.Background()); ip != "" {
				t.Errorf("expected empty IP for body %q, got %q", tt.body, ip)
			}
		})
	}
}

func TestPublicIPServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	d := New(newTestFetcher(), server.URL)
	if ip := d.PublicIP(context.Background()); ip != "" {
		t.Errorf("expected empty IP when server is unreachable, got %q", ip)
	}
}

func TestPublicIPSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	d := New(newTestFetcher(), server.URL)
	if ip := d.PublicIP(context.Background()); ip != "" {
		t.Errorf("expected empty IP, got %q", ip)
	}
	if calls.Load() != 1 {
		t.Errorf("discovery must not retry: expected 1 request, got %d", calls.Load())
	}
}

func TestIsValidPublicIP(t *testing.T) {
	tests := []struct {
		ip    string
		valid bool
	}{
		{"8.8.8.8", true},
		{"203.0.113.7", true},
		{"2001:db8::1", true},
		{"10.0.0.1", false},
		{"172.16.5.5", false},
		{"192.168.0.1", false},
		{"127.0.0.1", false},
		{"169.254.1.1", false},
		{"100.64.0.1", false},
		{"0.0.0.0", false},
		{"::", false},
		{"::1", false},
		{"fe80::1", false},
		{"fc00::1", false},
		{"not-an-ip", false},
		{"", false},
		{"1.2.3.4.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := IsValidPublicIP(tt.ip); got != tt.valid {
				t.Errorf("IsValidPublicIP(%q) = %v, want %v", tt.ip, got, tt.valid)
			}
		})
	}
}
