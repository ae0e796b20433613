// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package resolve

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/horologium/internal/cache"
	"github.com/tomtom215/horologium/internal/logging"
	"github.com/tomtom215/horologium/internal/tzmap"
)

// ErrNoTimezone is returned when no provider could produce a usable
// timezone for the address. Callers treat it as a terminal outcome,
// not a retryable fault.
var ErrNoTimezone = errors.New("timezone could not be determined")

// Resolver handles timezone resolution with provider fallback and
// write-through caching.
type Resolver struct {
	store     cache.Store
	providers []Provider
}

// New creates a resolver with the given providers. Providers are tried
// in order until one succeeds; store may be nil to disable caching.
func New(store cache.Store, providers ...Provider) *Resolver {
	return &Resolver{
		store:     store,
		providers: providers,
	}
}

// Resolve returns the IANA timezone for an IP, consulting the cache
// first and then the provider chain. Only values shaped like an IANA
// zone name ("Area/Location") are accepted and cached: a lookup
// service that answers 200 with an HTML error page or a bare country
// name must not poison the cache or the system clock.
func (r *Resolver) Resolve(ctx context.Context, ipAddress string) (string, error) {
	if ipAddress == "" {
		return "", ErrNoTimezone
	}

	if tz := r.tryCache(ctx, ipAddress); tz != "" {
		return tz, nil
	}

	return r.tryProviders(ctx, ipAddress)
}

func (r *Resolver) tryCache(ctx context.Context, ipAddress string) string {
	if r.store == nil {
		return ""
	}

	tz := r.store.Load()[ipAddress]
	if tz == "" {
		return ""
	}

	logging.Ctx(ctx).Debug().
		Str("ip", ipAddress).
		Str("timezone", tz).
		Msg("Timezone served from cache")
	return tz
}

func (r *Resolver) tryProviders(ctx context.Context, ipAddress string) (string, error) {
	attempted := 0

	for _, provider := range r.providers {
		if !provider.IsAvailable() {
			continue
		}
		attempted++

		tz, err := provider.Lookup(ctx, ipAddress)
		if err != nil {
			logging.Ctx(ctx).Debug().
				Err(err).
				Str("provider", provider.Name()).
				Str("ip", ipAddress).
				Msg("Timezone provider failed")
			continue
		}

		tz = strings.TrimSpace(tz)
		if !tzmap.LooksLikeIANA(tz) {
			logging.Ctx(ctx).Warn().
				Str("provider", provider.Name()).
				Str("value", tz).
				Msg("Provider answer does not look like an IANA zone, skipping")
			continue
		}

		logging.Ctx(ctx).Info().
			Str("provider", provider.Name()).
			Str("ip", ipAddress).
			Str("timezone", tz).
			Msg("Timezone resolved")
		r.cacheTimezone(ctx, ipAddress, tz)
		return tz, nil
	}

	if attempted == 0 {
		logging.Ctx(ctx).Warn().
			Str("ip", ipAddress).
			Msg("No timezone providers available")
	}
	return "", ErrNoTimezone
}

func (r *Resolver) cacheTimezone(ctx context.Context, ipAddress, tz string) {
	if r.store == nil {
		return
	}

	mapping := r.store.Load()
	if mapping == nil {
		mapping = make(map[string]string)
	}
	mapping[ipAddress] = tz
	r.store.Save(mapping)

	logging.Ctx(ctx).Debug().
		Str("ip", ipAddress).
		Str("timezone", tz).
		Msg("Timezone cached")
}
