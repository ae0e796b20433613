// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package cache

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horologium/internal/logging"
)

// FileStore persists the mapping as a single pretty-printed JSON object,
// one key per cached IP:
//
//	{
//	  "1.2.3.4": "Asia/Kolkata"
//	}
//
// The file lives under the user's home directory by default so repeated
// runs on the same network are answered without any network traffic.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The file and its parent
// directory are created lazily on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the mapping from disk. Absent and malformed files both yield
// an empty map; a malformed file is logged since it means a previous
// writer left garbage behind.
func (s *FileStore) Load() map[string]string {
	mapping := map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("path", s.path).Msg("Cache read failed, starting empty")
		}
		return mapping
	}

	if err := json.Unmarshal(data, &mapping); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Cache file corrupt, starting empty")
		return map[string]string{}
	}

	return mapping
}

// Save writes the full mapping, replacing the previous file contents.
func (s *FileStore) Save(mapping map[string]string) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Cache directory create failed, skipping save")
		return
	}

	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		logging.Warn().Err(err).Msg("Cache marshal failed, skipping save")
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Cache write failed, skipping save")
		return
	}

	logging.Debug().Str("path", s.path).Int("entries", len(mapping)).Msg("Cache saved")
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}
