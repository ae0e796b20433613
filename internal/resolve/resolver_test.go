// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package resolve

import (
	"context"
	"errors"
	"testing"
)

// stubProvider is a canned Provider for chain tests.
type stubProvider struct {
	name      string
	available bool
	tz        string
	err       error
	calls     int
}

func (p *stubProvider) Name() string      { return p.name }
func (p *stubProvider) IsAvailable() bool { return p.available }

func (p *stubProvider) Lookup(_ context.Context, _ string) (string, error) {
	p.calls++
	return p.tz, p.err
}

// memStore is an in-memory cache.Store that records writes.
type memStore struct {
	data  map[string]string
	saves int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Load() map[string]string {
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func (s *memStore) Save(mapping map[string]string) {
	s.data = mapping
	s.saves++
}

func (s *memStore) Close() error { return nil }

func TestResolveEmptyIP(t *testing.T) {
	r := New(newMemStore(), &stubProvider{name: "a", available: true, tz: "Asia/Tokyo"})

	_, err := r.Resolve(context.Background(), "")
	if !errors.Is(err, ErrNoTimezone) {
		t.Errorf("expected ErrNoTimezone for empty IP, got %v", err)
	}
}

func TestResolveCacheHitSkipsProviders(t *testing.T) {
	store := newMemStore()
	store.data["1.2.3.4"] = "Asia/Kolkata"
	provider := &stubProvider{name: "a", available: true, tz: "Europe/Paris"}
	r := New(store, provider)

	tz, err := r.Resolve(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz != "Asia/Kolkata" {
		t.Errorf("expected cached Asia/Kolkata, got %q", tz)
	}
	if provider.calls != 0 {
		t.Errorf("cache hit must not reach providers, got %d calls", provider.calls)
	}
}

func TestResolveFirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", available: true, tz: "Europe/Berlin"}
	second := &stubProvider{name: "second", available: true, tz: "Europe/Paris"}
	r := New(newMemStore(), first, second)

	tz, err := r.Resolve(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz != "Europe/Berlin" {
		t.Errorf("expected Europe/Berlin from first provider, got %q", tz)
	}
	if second.calls != 0 {
		t.Errorf("chain must stop at first success, second provider got %d calls", second.calls)
	}
}

func TestResolveFallsThroughOnError(t *testing.T) {
	first := &stubProvider{name: "first", available: true, err: errors.New("connection refused")}
	second := &stubProvider{name: "second", available: true, tz: "Asia/Tokyo"}
	r := New(newMemStore(), first, second)

	tz, err := r.Resolve(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz != "Asia/Tokyo" {
		t.Errorf("expected Asia/Tokyo from second provider, got %q", tz)
	}
	if first.calls != 1 {
		t.Errorf("first provider should have been tried once, got %d", first.calls)
	}
}

func TestResolveSkipsUnavailable(t *testing.T) {
	offline := &stubProvider{name: "offline", available: false, tz: "Europe/Paris"}
	online := &stubProvider{name: "online", available: true, tz: "Asia/Tokyo"}
	r := New(newMemStore(), offline, online)

	tz, err := r.Resolve(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz != "Asia/Tokyo" {
		t.Errorf("expected Asia/Tokyo, got %q", tz)
	}
	if offline.calls != 0 {
		t.Errorf("unavailable provider must not be called, got %d calls", offline.calls)
	}
}

func TestResolveRejectsNonIANAShapes(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"undefined sentinel", "Undefined"},
		{"bare country", "India"},
		{"html error page", "<html><body>Too many requests</body></html>"},
		{"utc", "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := &stubProvider{name: "bad", available: true, tz: tt.value}
			good := &stubProvider{name: "good", available: true, tz: "America/New_York"}
			store := newMemStore()
			r := New(store, bad, good)

			tz, err := r.Resolve(context.Background(), "1.2.3.4")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tz != "America/New_York" {
				t.Errorf("expected fallthrough to America/New_York, got %q", tz)
			}
			if got := store.data["1.2.3.4"]; got != "America/New_York" {
				t.Errorf("only the accepted value may be cached, got %q", got)
			}
		})
	}
}

func TestResolveWritesThroughToCache(t *testing.T) {
	store := newMemStore()
	store.data["9.9.9.9"] = "Europe/Madrid"
	r := New(store, &stubProvider{name: "a", available: true, tz: "Asia/Kolkata"})

	if _, err := r.Resolve(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.saves != 1 {
		t.Errorf("expected exactly 1 save, got %d", store.saves)
	}
	if store.data["1.2.3.4"] != "Asia/Kolkata" {
		t.Errorf("new entry missing from cache: %v", store.data)
	}
	if store.data["9.9.9.9"] != "Europe/Madrid" {
		t.Errorf("existing entries must survive a write-through: %v", store.data)
	}
}

func TestResolveCacheHitDoesNotRewrite(t *testing.T) {
	store := newMemStore()
	store.data["1.2.3.4"] = "Asia/Kolkata"
	r := New(store, &stubProvider{name: "a", available: true, tz: "Asia/Kolkata"})

	if _, err := r.Resolve(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saves != 0 {
		t.Errorf("cache hit must not rewrite the store, got %d saves", store.saves)
	}
}

func TestResolveAllProvidersFail(t *testing.T) {
	first := &stubProvider{name: "first", available: true, err: errors.New("timeout")}
	second := &stubProvider{name: "second", available: true, err: errors.New("boom")}
	r := New(newMemStore(), first, second)

	_, err := r.Resolve(context.Background(), "1.2.3.4")
	if !errors.Is(err, ErrNoTimezone) {
		t.Errorf("expected ErrNoTimezone, got %v", err)
	}
}

func TestResolveNoProvidersAvailable(t *testing.T) {
	r := New(newMemStore(), &stubProvider{name: "a", available: false})

	_, err := r.Resolve(context.Background(), "1.2.3.4")
	if !errors.Is(err, ErrNoTimezone) {
		t.Errorf("expected ErrNoTimezone, got %v", err)
	}
}

func TestResolveNilStore(t *testing.T) {
	r := New(nil, &stubProvider{name: "a", available: true, tz: "Asia/Tokyo"})

	tz, err := r.Resolve(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz != "Asia/Tokyo" {
		t.Errorf("expected Asia/Tokyo with nil store, got %q", tz)
	}
}
