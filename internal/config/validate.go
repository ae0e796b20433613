// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ipPlaceholder is the token in provider URL templates that gets replaced
// with the discovered public address.
const ipPlaceholder = "{ip}"

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServices(); err != nil {
		return err
	}

	if err := c.validateFetch(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateFallback(); err != nil {
		return err
	}

	if err := c.validateWindowsNames(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServices validates the external lookup endpoint URLs
func (c *Config) validateServices() error {
	if err := validateServiceURL(c.Services.IPEchoURL, "IP_ECHO_URL"); err != nil {
		return err
	}

	if err := validateServiceURL(c.Services.IPAPIURL, "IPAPI_URL"); err != nil {
		return err
	}
	if !strings.Contains(c.Services.IPAPIURL, ipPlaceholder) {
		return fmt.Errorf("IPAPI_URL must contain the %s placeholder", ipPlaceholder)
	}

	if err := validateServiceURL(c.Services.WorldTimeURL, "WORLDTIME_URL"); err != nil {
		return err
	}
	if !strings.Contains(c.Services.WorldTimeURL, ipPlaceholder) {
		return fmt.Errorf("WORLDTIME_URL must contain the %s placeholder", ipPlaceholder)
	}

	return nil
}

// validateFetch validates the HTTP retry and rate-limit configuration
func (c *Config) validateFetch() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got: %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("MAX_RETRIES must be at least 1, got: %d", c.Fetch.MaxAttempts)
	}
	if c.Fetch.BackoffBase <= 0 {
		return fmt.Errorf("BACKOFF_BASE must be positive, got: %s", c.Fetch.BackoffBase)
	}
	if c.Fetch.BackoffMax < c.Fetch.BackoffBase {
		return fmt.Errorf("BACKOFF_MAX must be at least BACKOFF_BASE (%s), got: %s",
			c.Fetch.BackoffBase, c.Fetch.BackoffMax)
	}
	if c.Fetch.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive, got: %g", c.Fetch.RateLimit)
	}
	if c.Fetch.RateBurst < 1 {
		return fmt.Errorf("RATE_BURST must be at least 1, got: %d", c.Fetch.RateBurst)
	}
	return nil
}

// validateCache validates the cache backend selection
func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "json", "badger":
	default:
		return fmt.Errorf("CACHE_BACKEND must be 'json' or 'badger', got: %s", c.Cache.Backend)
	}

	if c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required")
	}
	return nil
}

// validateFallback validates the browser fallback configuration (only if enabled)
func (c *Config) validateFallback() error {
	if !c.Fallback.Enabled {
		return nil // Fallback is optional - no validation needed when disabled
	}

	if err := validateServiceURL(c.Fallback.PageURL, "FALLBACK_PAGE_URL"); err != nil {
		return err
	}
	if c.Fallback.Selector == "" {
		return fmt.Errorf("FALLBACK_SELECTOR is required when USE_BROWSER_FALLBACK=1")
	}
	if c.Fallback.Timeout <= 0 {
		return fmt.Errorf("FALLBACK_TIMEOUT must be positive, got: %s", c.Fallback.Timeout)
	}
	return nil
}

// validateWindowsNames validates the IANA-to-Windows override table
func (c *Config) validateWindowsNames() error {
	for iana, windows := range c.WindowsNames {
		if strings.TrimSpace(iana) == "" || strings.TrimSpace(windows) == "" {
			return fmt.Errorf("windows_names entries must map a non-empty IANA name to a non-empty Windows name")
		}
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates the logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateServiceURL validates that a lookup endpoint URL is properly formatted.
// Unlike a base URL, a service endpoint may carry a path and query string
// (the timezone providers template the IP into the path).
func validateServiceURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	return nil
}
