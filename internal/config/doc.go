// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

/*
Package config provides centralized configuration management for Horologium.

This package handles loading, validation, and parsing of configuration for
all application components. It ensures consistent configuration across the
pipeline and provides sensible defaults for every setting, so a bare
`horologium` invocation works without any configuration at all.

# Configuration Sources

Configuration is loaded with Koanf v2 in three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: horologium.yaml, ~/.horologium/config.yaml,
    /etc/horologium/config.yaml, or the path in HOROLOGIUM_CONFIG
 3. Environment variables

# Configuration Structure

The package organizes configuration into logical groups:

  - ServicesConfig: lookup endpoint URLs (IP echo, timezone providers)
  - RunConfig: apply-policy defaults (dry-run, forced apply)
  - FetchConfig: HTTP timeout, retry, backoff, and rate-limit settings
  - CacheConfig: IP-to-timezone store backend and location
  - FallbackConfig: headless-browser last-resort provider
  - LoggingConfig: log level and output format

# Environment Variables

Both HOROLOGIUM_-prefixed and flat legacy names are honored:

Services:
  - IPIFY_URL: public IP echo endpoint (default: https://api.ipify.org?format=text)
  - IPAPI_TZ_BY_IP: primary timezone endpoint with {ip} placeholder
  - WORLDTIMEAPI_BY_IP: secondary timezone endpoint with {ip} placeholder

Run policy:
  - DRY_RUN: report without applying (default: 1)
  - FORCE_APPLY: skip the confirmation prompt (default: 0)

Fetch:
  - REQUEST_TIMEOUT: per-request timeout (default: 6s)
  - MAX_RETRIES: attempts per fetch (default: 3)
  - BACKOFF_BASE: initial retry wait, doubles per retry (default: 1s)
  - BACKOFF_MAX: retry wait ceiling (default: 30s)

Cache:
  - CACHE_BACKEND: json or badger (default: json)
  - CACHE_PATH: file or directory (default: under ~/.horologium)

Fallback:
  - USE_BROWSER_FALLBACK: enable the headless-browser provider (default: 1)
  - FALLBACK_PAGE_URL, FALLBACK_SELECTOR, FALLBACK_TIMEOUT, CHROME_PATH

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER, VERBOSE

# Validation

Load() validates the merged configuration and fails fast with an error
naming the offending variable, e.g. "MAX_RETRIES must be at least 1".
*/
package config
