// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package cache

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/horologium/internal/logging"
)

// tzKeyPrefix namespaces timezone entries inside the Badger keyspace so
// the database can host other data later without a migration.
const tzKeyPrefix = "iptz:"

// BadgerStore persists the mapping in an embedded BadgerDB directory.
// It holds the same swallow-and-log contract as FileStore but scales past
// the point where rewriting one JSON file per save stops being sensible
// (fleet inventories, many egress IPs).
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the database directory.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // failures surface as returned errors, not log spam

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Load scans the timezone key prefix into a mapping. Scan failures yield
// an empty map.
func (s *BadgerStore) Load() map[string]string {
	mapping := map[string]string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(tzKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			ip := strings.TrimPrefix(string(item.Key()), tzKeyPrefix)

			if err := item.Value(func(val []byte) error {
				mapping[ip] = string(val)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Cache scan failed, starting empty")
		return map[string]string{}
	}

	return mapping
}

// Save upserts the full mapping in one transaction.
func (s *BadgerStore) Save(mapping map[string]string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		for ip, tz := range mapping {
			if err := txn.Set([]byte(tzKeyPrefix+ip), []byte(tz)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Cache write failed, skipping save")
		return
	}

	logging.Debug().Int("entries", len(mapping)).Msg("Cache saved")
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
