// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package browser

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/horologium/internal/config"
)

// These tests never launch Chrome: an extractor with configuration
// gaps must fail before any process is spawned.

func TestTimezoneRequiresPageURL(t *testing.T) {
	e := New(config.FallbackConfig{
		Enabled:  true,
		Selector: "//dd[1]",
		Timeout:  time.Second,
	})

	_, err := e.Timezone(context.Background())
	if err == nil {
		t.Fatal("expected error when page URL is missing")
	}
	if !strings.Contains(err.Error(), "page URL") {
		t.Errorf("error should name the missing page URL, got: %v", err)
	}
}

func TestTimezoneRequiresSelector(t *testing.T) {
	e := New(config.FallbackConfig{
		Enabled: true,
		PageURL: "https://proxy6.net/en/privacy",
		Timeout: time.Second,
	})

	_, err := e.Timezone(context.Background())
	if err == nil {
		t.Fatal("expected error when selector is missing")
	}
	if !strings.Contains(err.Error(), "selector") {
		t.Errorf("error should name the missing selector, got: %v", err)
	}
}
