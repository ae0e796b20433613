// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package apply

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/tomtom215/horologium/internal/logging"
)

// Commander invokes the platform clock utility. The production
// implementation shells out; tests substitute a recorder.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecCommander runs the command through os/exec and folds its output
// into the returned error.
type ExecCommander struct{}

// Run executes name with args and waits for it to finish.
func (ExecCommander) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Confirmer solicits operator approval for a system change.
type Confirmer interface {
	// Confirm returns true only for an explicit affirmative answer.
	Confirm(tz string) bool
}

// TerminalConfirmer prompts on Out and reads one line from In. Only
// the exact answer "YES" approves; anything else, including EOF,
// declines.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prompts for and reads the operator's answer.
func (c *TerminalConfirmer) Confirm(tz string) bool {
	fmt.Fprintf(c.Out, "Apply timezone '%s' to this machine? Type YES to proceed: ", tz)

	line, _ := bufio.NewReader(c.In).ReadString('\n')
	return strings.TrimSpace(line) == "YES"
}

// logHostDetails records what machine the apply decision is being made
// on. Failures are ignored: host details are diagnostic only.
func logHostDetails(ctx context.Context) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Host details unavailable")
		return
	}

	logging.Ctx(ctx).Debug().
		Str("hostname", info.Hostname).
		Str("os", info.OS).
		Str("platform", info.Platform).
		Str("platform_version", info.PlatformVersion).
		Str("kernel", info.KernelVersion).
		Msg("Host details")
}
