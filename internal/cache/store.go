// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package cache

import (
	"github.com/tomtom215/horologium/internal/config"
	"github.com/tomtom215/horologium/internal/logging"
)

// Store is the durable IP-to-timezone mapping consulted before any network
// lookup. Implementations swallow their own failures: a Load that cannot
// read its backing data returns an empty map, a Save that cannot write
// logs and returns. A broken cache degrades the tool to network-only
// operation; it never breaks a run.
type Store interface {
	// Load returns the full mapping, empty when the backing store is
	// absent, unreadable, or corrupt.
	Load() map[string]string

	// Save replaces the stored mapping, best-effort.
	Save(mapping map[string]string)

	// Close releases the backing store.
	Close() error
}

// Open creates the Store selected by cfg.Backend: "badger" for the
// embedded key-value backend, "json" (the default) for the single-file
// store. A badger directory that cannot be opened degrades to a disabled
// store rather than failing the run.
func Open(cfg config.CacheConfig) Store {
	if cfg.Backend == "badger" {
		store, err := NewBadgerStore(cfg.Path)
		if err != nil {
			logging.Warn().Err(err).Str("path", cfg.Path).
				Msg("Cache database unavailable, continuing without persistence")
			return Disabled()
		}
		return store
	}
	return NewFileStore(cfg.Path)
}

// disabledStore remembers nothing. It stands in when the configured
// backend cannot be opened.
type disabledStore struct{}

// Disabled returns a Store that never hits nor persists.
func Disabled() Store {
	return disabledStore{}
}

func (disabledStore) Load() map[string]string { return map[string]string{} }
func (disabledStore) Save(map[string]string)  {}
func (disabledStore) Close() error            { return nil }
