// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

// Package logging provides centralized zerolog-based structured logging for Horologium.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured logging with human-readable console output for
// interactive runs and machine-parseable JSON for automation.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - Console output format for interactive CLI use (default)
//   - JSON output format for cron jobs and log shippers
//   - Global logger configuration from the application config
//   - Context-aware logging with run ID propagation
//
// # Quick Start
//
//	import "github.com/tomtom215/horologium/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Str("ip", ip).Msg("Public IP discovered")
//
// # Run IDs
//
// Every invocation generates a short run ID that is attached to the context
// and emitted on every log line produced by the pipeline, so interleaved
// cron runs remain distinguishable in shipped logs:
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("Resolution started")
//
// # Levels
//
// Verbose mode maps to the debug level. Provider failures inside the
// resolution chain are logged at debug/warn and swallowed; only terminal
// pipeline failures log at error.
package logging
