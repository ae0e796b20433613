// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

// Package browser extracts the connection's timezone from a public
// webpage by driving a headless Chrome session.
//
// This is the last resort of the resolution chain: it only runs when
// every HTTP lookup service has failed, and it requires a Chrome or
// Chromium binary on the host. Pages like proxy6.net/en/privacy render
// the viewer's timezone into the DOM, so reading one node of the
// rendered page answers the question the APIs could not.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/tomtom215/horologium/internal/config"
	"github.com/tomtom215/horologium/internal/logging"
)

// defaultTimeout bounds the whole navigate-and-extract operation when
// the config does not say otherwise. Headless Chrome startup alone can
// take several seconds on small machines.
const defaultTimeout = 60 * time.Second

// Extractor drives a headless Chrome session against a configured
// page and selector.
type Extractor struct {
	cfg config.FallbackConfig
}

// New creates an Extractor from the fallback configuration.
func New(cfg config.FallbackConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Timezone navigates to the configured page and returns the trimmed
// text of the configured selector node. The selector is evaluated via
// DOM search, so XPath expressions work.
func (e *Extractor) Timezone(ctx context.Context) (string, error) {
	if e.cfg.PageURL == "" {
		return "", errors.New("browser fallback has no page URL configured")
	}
	if e.cfg.Selector == "" {
		return "", errors.New("browser fallback has no selector configured")
	}

	timeout := e.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.cfg.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	logging.Ctx(ctx).Debug().
		Str("url", e.cfg.PageURL).
		Str("selector", e.cfg.Selector).
		Dur("timeout", timeout).
		Msg("Launching headless browser for timezone extraction")

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(e.cfg.PageURL),
		chromedp.Text(e.cfg.Selector, &text, chromedp.BySearch),
	)
	if err != nil {
		return "", fmt.Errorf("browser extraction failed: %w", err)
	}

	tz := strings.TrimSpace(text)
	if tz == "" {
		return "", fmt.Errorf("selector matched no text on %s", e.cfg.PageURL)
	}

	logging.Ctx(ctx).Debug().
		Str("timezone", tz).
		Msg("Browser extracted timezone")
	return tz, nil
}
