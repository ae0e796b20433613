// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id := GenerateRunID()
	if len(id) != 8 {
		t.Errorf("expected 8-character run ID, got %d characters: %s", len(id), id)
	}

	other := GenerateRunID()
	if id == other {
		t.Errorf("expected unique run IDs, got %s twice", id)
	}
}

func TestContextWithRunID(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRunID(context.Background(), "abc12345")
	if got := RunIDFromContext(ctx); got != "abc12345" {
		t.Errorf("RunIDFromContext() = %q, want %q", got, "abc12345")
	}
}

func TestRunIDFromContextMissing(t *testing.T) {
	t.Parallel()

	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty run ID for bare context, got %q", got)
	}
}

func TestContextWithNewRunID(t *testing.T) {
	t.Parallel()

	ctx := ContextWithNewRunID(context.Background())
	if got := RunIDFromContext(ctx); len(got) != 8 {
		t.Errorf("expected generated 8-character run ID, got %q", got)
	}
}

func TestCtxAddsRunID(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := ContextWithRunID(context.Background(), "run00001")
	Ctx(ctx).Info().Msg("with run id")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run00001"`) {
		t.Errorf("expected run_id field in output: %s", output)
	}
}

func TestCtxWithoutRunID(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	Ctx(context.Background()).Info().Msg("no run id")

	output := buf.String()
	if strings.Contains(output, "run_id") {
		t.Errorf("expected no run_id field for bare context: %s", output)
	}
}

func TestCtxWith(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := ContextWithRunID(context.Background(), "run00002")
	logger := CtxWith(ctx).Str("provider", "ipapi").Logger()
	logger.Debug().Msg("provider attempt")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run00002"`) {
		t.Errorf("expected run_id field in output: %s", output)
	}
	if !strings.Contains(output, `"provider":"ipapi"`) {
		t.Errorf("expected provider field in output: %s", output)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer

	stored := zerolog.New(&buf).With().Str("stored", "yes").Logger()
	ctx := ContextWithLogger(context.Background(), stored)

	got := LoggerFromContext(ctx)
	got.Info().Msg("from context")

	output := buf.String()
	if !strings.Contains(output, `"stored":"yes"`) {
		t.Errorf("expected stored logger fields in output: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger := WithComponent("cache")
	logger.Info().Msg("component log")

	output := buf.String()
	if !strings.Contains(output, `"component":"cache"`) {
		t.Errorf("expected component field in output: %s", output)
	}
}
