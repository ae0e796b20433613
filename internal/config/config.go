// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (horologium.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Services: Lookup endpoint URLs (IP echo, timezone-by-IP providers)
//  2. Run: Apply-policy defaults (dry-run, forced apply)
//  3. Fetch: HTTP retry/backoff/rate-limit behavior
//  4. Cache: Durable IP-to-timezone store (JSON file or Badger)
//  5. Fallback: Headless-browser last-resort provider
//  6. WindowsNames: IANA-to-Windows timezone name overrides
//  7. Logging: Log levels and output formats
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Services     ServicesConfig    `koanf:"services"`
	Run          RunConfig         `koanf:"run"`
	Fetch        FetchConfig       `koanf:"fetch"`
	Cache        CacheConfig       `koanf:"cache"`
	Fallback     FallbackConfig    `koanf:"fallback"`
	WindowsNames map[string]string `koanf:"windows_names"` // Optional: extends the built-in IANA-to-Windows table
	Logging      LoggingConfig     `koanf:"logging"`
}

// ServicesConfig holds the external lookup endpoint URLs.
// The two timezone URLs are templates: the literal token {ip} is replaced
// with the discovered public address before the request is made.
type ServicesConfig struct {
	// IPEchoURL returns the caller's public IP as a plain-text body.
	IPEchoURL string `koanf:"ip_echo_url"`

	// IPAPIURL is the primary timezone provider (plain-text response).
	IPAPIURL string `koanf:"ipapi_url"`

	// WorldTimeURL is the secondary timezone provider (JSON response
	// with a "timezone" field).
	WorldTimeURL string `koanf:"worldtime_url"`
}

// RunConfig holds the apply-policy defaults. Both are overridden by the
// --apply and --force CLI flags.
type RunConfig struct {
	// DryRun reports the would-be change without touching the system clock.
	// Default: true. Pass --apply to disable.
	DryRun bool `koanf:"dry_run"`

	// Force skips the interactive confirmation prompt when applying.
	Force bool `koanf:"force"`
}

// FetchConfig holds HTTP fetch behavior shared by all providers.
type FetchConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `koanf:"timeout"`

	// MaxAttempts bounds tries per fetch, including the first.
	MaxAttempts int `koanf:"max_attempts"`

	// BackoffBase is the initial wait before a retry; it doubles on
	// every subsequent retry.
	BackoffBase time.Duration `koanf:"backoff_base"`

	// BackoffMax caps the doubled wait.
	BackoffMax time.Duration `koanf:"backoff_max"`

	// RateLimit is the steady-state outgoing request rate (req/sec)
	// shared across all providers. The free lookup services are
	// per-minute rate limited upstream.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the token-bucket burst size.
	RateBurst int `koanf:"rate_burst"`

	// UserAgent is sent on every outgoing request.
	UserAgent string `koanf:"user_agent"`
}

// CacheConfig selects and locates the IP-to-timezone store.
type CacheConfig struct {
	// Backend is "json" (single-file store, default) or "badger"
	// (embedded key-value store).
	Backend string `koanf:"backend"`

	// Path is the cache file (json backend) or directory (badger
	// backend). Empty selects a per-user default under the home
	// directory.
	Path string `koanf:"path"`
}

// FallbackConfig controls the headless-browser last-resort provider.
type FallbackConfig struct {
	// Enabled wires the browser provider at the end of the chain.
	Enabled bool `koanf:"enabled"`

	// PageURL is the page whose rendered content carries the viewer's
	// timezone.
	PageURL string `koanf:"page_url"`

	// Selector is the XPath of the node holding the timezone text.
	Selector string `koanf:"selector"`

	// Timeout bounds the whole navigate-and-extract operation.
	Timeout time.Duration `koanf:"timeout"`

	// ChromePath optionally pins the Chrome/Chromium binary.
	ChromePath string `koanf:"chrome_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "console" or "json".
	Format string `koanf:"format"`

	// Caller includes caller file:line in log output.
	Caller bool `koanf:"caller"`

	// Verbose forces the debug level regardless of Level.
	Verbose bool `koanf:"verbose"`
}

// EffectiveLevel resolves the configured level, honoring Verbose.
func (l LoggingConfig) EffectiveLevel() string {
	if l.Verbose {
		return "debug"
	}
	return l.Level
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. Config file (horologium.yaml if exists, or path in HOROLOGIUM_CONFIG)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
