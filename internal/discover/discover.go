// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

// Package discover determines the public IP address the rest of the
// world sees for this host by asking an address-echo service.
//
// Discovery is deliberately a single bounded attempt: the probe either
// yields a usable address or it does not, and every downstream stage
// already knows how to proceed without one. Failures are logged and
// reported as an empty string, never as an error.
package discover

import (
	"context"
	"net"
	"strings"

	"github.com/tomtom215/horologium/internal/fetch"
	"github.com/tomtom215/horologium/internal/logging"
)

// maxBodyPreview bounds how much of an unexpected response body is
// echoed into the log.
const maxBodyPreview = 64

var privateRanges = []string{
	"10.0.0.0/8",     // RFC 1918
	"172.16.0.0/12",  // RFC 1918
	"192.168.0.0/16", // RFC 1918
	"127.0.0.0/8",    // Loopback
	"169.254.0.0/16", // Link-local
	"100.64.0.0/10",  // CGNAT
	"::1/128",        // IPv6 loopback
	"fc00::/7",       // IPv6 unique local
	"fe80::/10",      // IPv6 link-local
}

var privateNets []*net.IPNet

func init() {
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		privateNets = append(privateNets, network)
	}
}

// Fetcher is the transport slice discovery needs. *fetch.Client
// satisfies it.
type Fetcher interface {
	FetchOnce(ctx context.Context, url string) (*fetch.Result, error)
}

// Discoverer probes a single address-echo endpoint.
type Discoverer struct {
	fetcher Fetcher
	url     string
}

// New creates a Discoverer that queries url through fetcher.
func New(fetcher Fetcher, url string) *Discoverer {
	return &Discoverer{fetcher: fetcher, url: url}
}

// PublicIP returns the host's public address, or "" when discovery
// fails for any reason: transport error, non-200 status, a body that
// is not an IP address, or an address that could never be routable.
func (d *Discoverer) PublicIP(ctx context.Context) string {
	result, err := d.fetcher.FetchOnce(ctx, d.url)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("url", d.url).
			Msg("Public IP discovery failed")
		return ""
	}

	if !result.OK() {
		logging.Ctx(ctx).Warn().
			Int("status", result.StatusCode).
			Str("url", d.url).
			Msg("Address echo service returned an unexpected status")
		return ""
	}

	ip := strings.TrimSpace(string(result.Body))
	if !IsValidPublicIP(ip) {
		logging.Ctx(ctx).Warn().
			Str("body", preview(ip)).
			Str("url", d.url).
			Msg("Address echo service returned an unusable body")
		return ""
	}

	logging.Ctx(ctx).Debug().
		Str("ip", ip).
		Msg("Discovered public IP")
	return ip
}

// IsValidPublicIP reports whether ipStr parses as an IP address that
// could plausibly be this host's public address. Private, loopback,
// link-local, and unspecified addresses are rejected: an echo service
// returning one of those means the probe never left the local network.
func IsValidPublicIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ip.IsUnspecified() {
		return false
	}
	return !isPrivate(ip)
}

func isPrivate(ip net.IP) bool {
	for _, network := range privateNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func preview(s string) string {
	if len(s) > maxBodyPreview {
		return s[:maxBodyPreview]
	}
	return s
}
