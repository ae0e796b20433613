// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

// Package main is the entry point for the horologium command.
//
// Horologium determines the timezone the rest of the world observes
// for this machine by geolocating its public IP address, and can apply
// that timezone to the operating system clock. It exists for machines
// that move or live behind changing egress points (laptops, roaming
// VMs, travel routers) where the configured clock drifts away from
// where the machine actually is.
//
// # Pipeline
//
// A run executes one sequential pipeline:
//
//  1. Configuration: load settings from environment variables and an
//     optional YAML config file (Koanf v2)
//  2. Discovery: one request to an address-echo service for the
//     public IP
//  3. Resolution: cache lookup, then an ordered chain of timezone
//     providers (plain-text API, JSON API, headless-browser fallback)
//  4. Apply policy: dry-run report, confirmation prompt, and the
//     platform clock command (timedatectl on Linux, tzutil on Windows)
//
// # Flags
//
//	--apply   apply the resolved timezone (default is a dry run)
//	--force   skip the confirmation prompt when applying
//
// # Exit Codes
//
//	0  resolved and applied, dry-run reported, or operator aborted
//	1  public IP could not be determined
//	2  no provider resolved a timezone
//	3  unsupported platform
//	4  apply step failed
//
// # Example Usage
//
// Report only (dry run is the default):
//
//	./horologium
//
// Apply with confirmation:
//
//	./horologium --apply
//
// Apply unattended:
//
//	./horologium --apply --force
//
// Verbose logging and a custom cache location:
//
//	export VERBOSE=true
//	export CACHE_PATH=/var/lib/horologium/ip_tz_cache.json
//	./horologium
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/horologium/internal/apply"
	"github.com/tomtom215/horologium/internal/browser"
	"github.com/tomtom215/horologium/internal/cache"
	"github.com/tomtom215/horologium/internal/config"
	"github.com/tomtom215/horologium/internal/discover"
	"github.com/tomtom215/horologium/internal/fetch"
	"github.com/tomtom215/horologium/internal/logging"
	"github.com/tomtom215/horologium/internal/resolve"
)

// Exit codes. Dry runs and operator aborts are successes: the program
// did what it was asked to do.
const (
	exitOK          = 0
	exitNoPublicIP  = 1
	exitNoTimezone  = 2
	exitUnsupported = 3
	exitApplyFailed = 4
)

// timezoneApplier is the slice of the apply package main needs. Tests
// substitute a recorder so no pipeline test can touch the host clock.
type timezoneApplier interface {
	Apply(ctx context.Context, tz string) apply.Outcome
}

func main() {
	applyFlag := flag.Bool("apply", false, "apply the resolved timezone to the system clock (default is a dry run)")
	forceFlag := flag.Bool("force", false, "skip the confirmation prompt when applying")
	flag.Parse()

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// CLI flags override the configured apply policy.
	if *applyFlag {
		cfg.Run.DryRun = false
	}
	if *forceFlag {
		cfg.Run.Force = true
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.EffectiveLevel(),
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	// Ctrl-C cancels in-flight network calls; the pipeline then winds
	// down through its normal failure paths.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applier := apply.New(apply.Options{
		DryRun:       cfg.Run.DryRun,
		Force:        cfg.Run.Force,
		WindowsNames: cfg.WindowsNames,
		Out:          os.Stdout,
	})

	code := run(ctx, cfg, os.Stdout, applier)
	stop()
	os.Exit(code)
}

// run executes the discovery-resolution-apply pipeline and returns the
// process exit code.
func run(ctx context.Context, cfg *config.Config, out io.Writer, applier timezoneApplier) int {
	ctx = logging.ContextWithNewRunID(ctx)

	logging.Ctx(ctx).Info().
		Bool("dry_run", cfg.Run.DryRun).
		Bool("force", cfg.Run.Force).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting timezone detection")

	client := fetch.New(fetch.Config{
		Timeout:     cfg.Fetch.Timeout,
		MaxAttempts: cfg.Fetch.MaxAttempts,
		BackoffBase: cfg.Fetch.BackoffBase,
		BackoffMax:  cfg.Fetch.BackoffMax,
		RateLimit:   cfg.Fetch.RateLimit,
		RateBurst:   cfg.Fetch.RateBurst,
		UserAgent:   cfg.Fetch.UserAgent,
	})

	ip := discover.New(client, cfg.Services.IPEchoURL).PublicIP(ctx)
	if ip == "" {
		fmt.Fprintln(out, "Could not determine this machine's public IP address.")
		return exitNoPublicIP
	}
	fmt.Fprintf(out, "Public IP: %s\n", ip)

	store := cache.Open(cfg.Cache)
	defer func() {
		if err := store.Close(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Error closing cache store")
		}
	}()

	resolver := resolve.New(store, buildProviders(cfg, client)...)
	tz, err := resolver.Resolve(ctx, ip)
	if err != nil {
		fmt.Fprintln(out, "Could not resolve a timezone for this machine's public IP.")
		return exitNoTimezone
	}
	fmt.Fprintf(out, "Resolved timezone: %s\n", tz)

	switch outcome := applier.Apply(ctx, tz); outcome {
	case apply.OutcomeDryRun, apply.OutcomeApplied, apply.OutcomeAborted:
		return exitOK
	case apply.OutcomeUnsupported:
		return exitUnsupported
	default:
		return exitApplyFailed
	}
}

// buildProviders assembles the resolution chain in its fixed order:
// plain-text API, JSON API, then the browser fallback.
func buildProviders(cfg *config.Config, client *fetch.Client) []resolve.Provider {
	extractor := browser.New(cfg.Fallback)

	return []resolve.Provider{
		resolve.NewTextProvider("ipapi", client, cfg.Services.IPAPIURL),
		resolve.NewJSONProvider("worldtimeapi", client, cfg.Services.WorldTimeURL),
		resolve.NewBrowserProvider(extractor.Timezone, cfg.Fallback.Enabled),
	}
}
