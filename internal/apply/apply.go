// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package apply

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/tomtom215/horologium/internal/logging"
	"github.com/tomtom215/horologium/internal/tzmap"
)

// Outcome classifies how an apply attempt ended. The CLI maps each
// outcome to its exit code.
type Outcome int

const (
	// OutcomeDryRun means the would-be change was reported and nothing
	// was touched.
	OutcomeDryRun Outcome = iota
	// OutcomeApplied means the system timezone was changed.
	OutcomeApplied
	// OutcomeAborted means the operator declined the confirmation prompt.
	OutcomeAborted
	// OutcomeUnsupported means this platform has no apply strategy.
	OutcomeUnsupported
	// OutcomeFailed means the apply step could not complete: validation
	// failed, the mapping was missing, or the OS command errored.
	OutcomeFailed
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDryRun:
		return "dry-run"
	case OutcomeApplied:
		return "applied"
	case OutcomeAborted:
		return "aborted"
	case OutcomeUnsupported:
		return "unsupported"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures an Applier. Zero-value collaborators select the
// real system: runtime.GOOS, an exec-backed commander, and a terminal
// prompt reading stdin.
type Options struct {
	// DryRun reports the would-be change without invoking any command.
	DryRun bool

	// Force skips the confirmation prompt.
	Force bool

	// GOOS overrides the detected platform. Tests use this to walk the
	// Windows and unsupported paths from any host.
	GOOS string

	// WindowsNames extends the built-in IANA-to-Windows name table.
	WindowsNames map[string]string

	// Commander invokes the platform clock utility.
	Commander Commander

	// Confirmer solicits operator approval.
	Confirmer Confirmer

	// Out receives the one-line operator messages.
	Out io.Writer
}

// Applier decides whether and how a resolved timezone reaches the
// system clock.
type Applier struct {
	dryRun       bool
	force        bool
	goos         string
	windowsNames map[string]string
	commander    Commander
	confirmer    Confirmer
	out          io.Writer
}

// New creates an Applier. Unset Options fields fall back to the real
// system collaborators.
func New(opts Options) *Applier {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Commander == nil {
		opts.Commander = ExecCommander{}
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Confirmer == nil {
		opts.Confirmer = &TerminalConfirmer{In: os.Stdin, Out: opts.Out}
	}

	return &Applier{
		dryRun:       opts.DryRun,
		force:        opts.Force,
		goos:         opts.GOOS,
		windowsNames: opts.WindowsNames,
		commander:    opts.Commander,
		confirmer:    opts.Confirmer,
		out:          opts.Out,
	}
}

// Apply runs the decision sequence for tz on this platform. The
// platform gate comes first: an unsupported OS is terminal regardless
// of the dry-run and force flags.
func (a *Applier) Apply(ctx context.Context, tz string) Outcome {
	logHostDetails(ctx)

	switch a.goos {
	case "linux":
		return a.applyLinux(ctx, tz)
	case "windows":
		return a.applyWindows(ctx, tz)
	default:
		fmt.Fprintf(a.out, "Unsupported platform %q: cannot set the system timezone.\n", a.goos)
		logging.Ctx(ctx).Error().
			Str("os", a.goos).
			Msg("No apply strategy for this platform")
		return OutcomeUnsupported
	}
}

func (a *Applier) applyLinux(ctx context.Context, tz string) Outcome {
	if a.dryRun {
		fmt.Fprintf(a.out, "Dry run: would execute 'timedatectl set-timezone %s'\n", tz)
		return OutcomeDryRun
	}

	if !a.confirmed(ctx, tz) {
		return OutcomeAborted
	}

	// An unknown zone must fail here, before timedatectl sees it.
	if err := tzmap.ValidateLocal(tz); err != nil {
		fmt.Fprintf(a.out, "Timezone %q is not in the local timezone database; not applying.\n", tz)
		logging.Ctx(ctx).Error().
			Err(err).
			Str("timezone", tz).
			Msg("Timezone failed local validation")
		return OutcomeFailed
	}

	if err := a.commander.Run(ctx, "timedatectl", "set-timezone", tz); err != nil {
		fmt.Fprintf(a.out, "Failed to set timezone: %v\n", err)
		logging.Ctx(ctx).Error().
			Err(err).
			Str("timezone", tz).
			Msg("timedatectl failed")
		return OutcomeFailed
	}

	fmt.Fprintf(a.out, "System timezone set to %s.\n", tz)
	logging.Ctx(ctx).Info().
		Str("timezone", tz).
		Msg("System timezone applied")
	return OutcomeApplied
}

func (a *Applier) applyWindows(ctx context.Context, tz string) Outcome {
	native, ok := tzmap.WindowsName(tz, a.windowsNames)

	if a.dryRun {
		if !ok {
			fmt.Fprintf(a.out, "Dry run: no Windows timezone name mapped for %q; tzutil would not be invoked.\n", tz)
			return OutcomeFailed
		}
		fmt.Fprintf(a.out, "Dry run: would execute 'tzutil /s \"%s\"'\n", native)
		return OutcomeDryRun
	}

	if !a.confirmed(ctx, tz) {
		return OutcomeAborted
	}

	if !ok {
		fmt.Fprintf(a.out, "No Windows timezone name mapped for %q; not applying.\n", tz)
		logging.Ctx(ctx).Error().
			Str("timezone", tz).
			Msg("Missing IANA-to-Windows mapping")
		return OutcomeFailed
	}

	if err := a.commander.Run(ctx, "tzutil", "/s", native); err != nil {
		fmt.Fprintf(a.out, "Failed to set timezone: %v\n", err)
		logging.Ctx(ctx).Error().
			Err(err).
			Str("timezone", tz).
			Str("windows_name", native).
			Msg("tzutil failed")
		return OutcomeFailed
	}

	fmt.Fprintf(a.out, "System timezone set to %s (%s).\n", native, tz)
	logging.Ctx(ctx).Info().
		Str("timezone", tz).
		Str("windows_name", native).
		Msg("System timezone applied")
	return OutcomeApplied
}

func (a *Applier) confirmed(ctx context.Context, tz string) bool {
	if a.force {
		return true
	}
	if a.confirmer.Confirm(tz) {
		return true
	}

	fmt.Fprintln(a.out, "Aborted: timezone was not applied.")
	logging.Ctx(ctx).Info().
		Str("timezone", tz).
		Msg("Operator declined confirmation")
	return false
}
