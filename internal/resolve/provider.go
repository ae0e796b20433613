// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horologium/internal/fetch"
)

// ipPlaceholder is the token in provider URL templates that is replaced
// with the discovered public address.
const ipPlaceholder = "{ip}"

// Provider defines the interface for timezone lookup services.
// Implementations can use external APIs or a driven browser.
type Provider interface {
	// Lookup returns the IANA timezone for the given IP address.
	// Returns an empty string and an error if the lookup fails.
	Lookup(ctx context.Context, ipAddress string) (string, error)

	// Name returns the provider name for logging.
	Name() string

	// IsAvailable checks if the provider is properly configured and available.
	IsAvailable() bool
}

// Fetcher is the transport slice providers need. *fetch.Client
// satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// ========================================
// Plain-Text Provider
// ========================================

// TextProvider implements Provider against services that answer with
// the timezone as the raw response body (ipapi.co's /timezone/ path).
type TextProvider struct {
	name     string
	fetcher  Fetcher
	template string
}

// NewTextProvider creates a plain-text provider. template must contain
// the {ip} token.
func NewTextProvider(name string, fetcher Fetcher, template string) *TextProvider {
	return &TextProvider{
		name:     name,
		fetcher:  fetcher,
		template: template,
	}
}

// Name returns the provider name.
func (p *TextProvider) Name() string {
	return p.name
}

// IsAvailable returns true when a URL template is configured.
func (p *TextProvider) IsAvailable() bool {
	return p.template != "" && p.fetcher != nil
}

// Lookup queries the service and returns the trimmed response body.
func (p *TextProvider) Lookup(ctx context.Context, ipAddress string) (string, error) {
	result, err := p.fetcher.Fetch(ctx, expandTemplate(p.template, ipAddress))
	if err != nil {
		return "", fmt.Errorf("%s query failed: %w", p.name, err)
	}

	if !result.OK() {
		return "", fmt.Errorf("%s returned status %d", p.name, result.StatusCode)
	}

	tz := strings.TrimSpace(string(result.Body))
	if tz == "" {
		return "", fmt.Errorf("%s returned an empty body", p.name)
	}

	return tz, nil
}

// ========================================
// JSON Provider
// ========================================

// JSONProvider implements Provider against services that answer with a
// JSON document carrying a "timezone" field (worldtimeapi.org).
type JSONProvider struct {
	name     string
	fetcher  Fetcher
	template string
}

// timezoneResponse is the slice of the service response we care about.
// WorldTimeAPI returns a much larger document; everything else is
// ignored.
type timezoneResponse struct {
	Timezone string `json:"timezone"`
}

// NewJSONProvider creates a JSON provider. template must contain the
// {ip} token.
func NewJSONProvider(name string, fetcher Fetcher, template string) *JSONProvider {
	return &JSONProvider{
		name:     name,
		fetcher:  fetcher,
		template: template,
	}
}

// Name returns the provider name.
func (p *JSONProvider) Name() string {
	return p.name
}

// IsAvailable returns true when a URL template is configured.
func (p *JSONProvider) IsAvailable() bool {
	return p.template != "" && p.fetcher != nil
}

// Lookup queries the service and returns the timezone field of the
// JSON response.
func (p *JSONProvider) Lookup(ctx context.Context, ipAddress string) (string, error) {
	result, err := p.fetcher.Fetch(ctx, expandTemplate(p.template, ipAddress))
	if err != nil {
		return "", fmt.Errorf("%s query failed: %w", p.name, err)
	}

	if !result.OK() {
		return "", fmt.Errorf("%s returned status %d", p.name, result.StatusCode)
	}

	var decoded timezoneResponse
	if err := json.Unmarshal(result.Body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", p.name, err)
	}

	if decoded.Timezone == "" {
		return "", fmt.Errorf("%s response carried no timezone", p.name)
	}

	return decoded.Timezone, nil
}

// ========================================
// Browser Fallback Provider
// ========================================

// BrowserFunc obtains a timezone by driving a real browser session.
// It is a plain function so the resolver and its tests stay free of
// the browser automation dependency.
type BrowserFunc func(ctx context.Context) (string, error)

// BrowserProvider implements Provider by rendering a page that reports
// the viewer's timezone. The page reflects whatever address the
// browser egresses from, so the passed IP is ignored.
type BrowserProvider struct {
	fn      BrowserFunc
	enabled bool
}

// NewBrowserProvider creates the last-resort browser provider.
func NewBrowserProvider(fn BrowserFunc, enabled bool) *BrowserProvider {
	return &BrowserProvider{fn: fn, enabled: enabled}
}

// Name returns the provider name.
func (p *BrowserProvider) Name() string {
	return "browser-fallback"
}

// IsAvailable returns true when the fallback is enabled and wired.
func (p *BrowserProvider) IsAvailable() bool {
	return p.enabled && p.fn != nil
}

// Lookup drives the browser and returns the extracted timezone text.
func (p *BrowserProvider) Lookup(ctx context.Context, _ string) (string, error) {
	tz, err := p.fn(ctx)
	if err != nil {
		return "", fmt.Errorf("browser fallback failed: %w", err)
	}
	return tz, nil
}

func expandTemplate(template, ipAddress string) string {
	return strings.ReplaceAll(template, ipPlaceholder, ipAddress)
}
