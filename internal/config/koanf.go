// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"horologium.yaml",
	"horologium.yml",
	"/etc/horologium/config.yaml",
	"/etc/horologium/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "HOROLOGIUM_CONFIG"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Services: ServicesConfig{
			IPEchoURL:    "https://api.ipify.org?format=text",
			IPAPIURL:     "https://ipapi.co/{ip}/timezone/",
			WorldTimeURL: "http://worldtimeapi.org/api/ip/{ip}",
		},
		Run: RunConfig{
			DryRun: true, // Reporting-only by default; --apply opts in to mutation
			Force:  false,
		},
		Fetch: FetchConfig{
			Timeout:     6 * time.Second,
			MaxAttempts: 3,
			BackoffBase: 1 * time.Second,
			BackoffMax:  30 * time.Second,
			RateLimit:   1.0, // Conservative default for free lookup APIs
			RateBurst:   3,
			UserAgent:   "horologium/1.0",
		},
		Cache: CacheConfig{
			Backend: "json",
			Path:    "", // Resolved per-backend under the user home directory
		},
		Fallback: FallbackConfig{
			Enabled: true,
			PageURL: "https://proxy6.net/privacy",
			// Fixed DOM location of the timezone row on the privacy page.
			Selector:   "/html/body/div[1]/div[2]/div/div/div/div[2]/div[2]/div[1]/div[4]/dl[1]/dd",
			Timeout:    60 * time.Second,
			ChromePath: "",
		},
		WindowsNames: map[string]string{},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			Caller:  false,
			Verbose: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
//   - Backward compatibility with the flat legacy variable names
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// REQUEST_TIMEOUT -> fetch.timeout
	// HOROLOGIUM_CACHE_PATH -> cache.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Resolve the per-backend default cache path
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath(cfg.Cache.Backend)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Per-user config next
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".horologium", "config.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return userPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// DefaultCachePath returns the per-user cache location for the given backend:
// a JSON file for the "json" backend, a database directory for "badger".
// Falls back to the working directory when the home directory is unknown.
func DefaultCachePath(backend string) string {
	base := "."
	if home, err := os.UserHomeDir(); err == nil {
		base = home
	}
	if backend == "badger" {
		return filepath.Join(base, ".horologium", "cache")
	}
	return filepath.Join(base, ".horologium", "ip_tz_cache.json")
}

// envTransformFunc transforms environment variable names to koanf config paths.
// It maps both HOROLOGIUM_-prefixed names and the flat legacy names to the
// nested configuration structure.
//
// Examples:
//   - REQUEST_TIMEOUT -> fetch.timeout
//   - MAX_RETRIES -> fetch.max_attempts
//   - USE_BROWSER_FALLBACK -> fallback.enabled
//   - HOROLOGIUM_CACHE_BACKEND -> cache.backend
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, "horologium_")

	envMappings := map[string]string{
		// Service endpoint mappings
		"ipify_url":          "services.ip_echo_url",
		"ip_echo_url":        "services.ip_echo_url",
		"ipapi_tz_by_ip":     "services.ipapi_url",
		"ipapi_url":          "services.ipapi_url",
		"worldtimeapi_by_ip": "services.worldtime_url",
		"worldtime_url":      "services.worldtime_url",

		// Run policy mappings
		"dry_run":     "run.dry_run",
		"force_apply": "run.force",

		// Fetch mappings
		"request_timeout": "fetch.timeout",
		"max_retries":     "fetch.max_attempts",
		"backoff_base":    "fetch.backoff_base",
		"backoff_max":     "fetch.backoff_max",
		"rate_limit":      "fetch.rate_limit",
		"rate_burst":      "fetch.rate_burst",
		"user_agent":      "fetch.user_agent",

		// Cache mappings
		"cache_backend": "cache.backend",
		"cache_path":    "cache.path",

		// Browser fallback mappings (legacy selenium names still honored)
		"use_browser_fallback":  "fallback.enabled",
		"use_selenium_fallback": "fallback.enabled",
		"fallback_page_url":     "fallback.page_url",
		"fallback_selector":     "fallback.selector",
		"fallback_timeout":      "fallback.timeout",
		"chrome_path":           "fallback.chrome_path",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
		"verbose":    "logging.verbose",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
