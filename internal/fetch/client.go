// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/horologium/internal/logging"
)

// maxResponseBytes limits response body reads to 1MB. Lookup responses
// are a few bytes to a few KB.
const maxResponseBytes = 1 << 20

// ErrRateLimited is returned when a fetch exhausts its attempt budget on
// HTTP 429 responses. Match with errors.Is.
var ErrRateLimited = errors.New("rate limited")

// Result is the terminal outcome of a fetch: the final status code and
// the response body. A non-200 status is not an error at this layer;
// callers inspect the code and decide.
type Result struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carried HTTP 200.
func (r *Result) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Config holds fetch behavior shared by all lookups.
type Config struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxAttempts bounds tries per fetch, including the first.
	MaxAttempts int

	// BackoffBase is the initial retry wait; it doubles per retry.
	BackoffBase time.Duration

	// BackoffMax caps the doubled wait.
	BackoffMax time.Duration

	// RateLimit / RateBurst configure the shared token bucket pacing
	// all outgoing requests.
	RateLimit float64
	RateBurst int

	// UserAgent is sent on every request.
	UserAgent string
}

// Client is a retrying HTTP fetcher with exponential backoff and rate-limit
// awareness. All provider and discovery traffic goes through one Client so
// the token bucket paces the process as a whole.
//
// Retry policy per attempt:
//   - HTTP 200: return immediately
//   - HTTP 429: wait (Retry-After if present, else current backoff), retry
//   - other status: return immediately with the status for the caller
//   - transport error: wait current backoff, retry
//
// The backoff wait starts at BackoffBase and doubles per retry up to
// BackoffMax. Exhausting the budget on 429s returns ErrRateLimited;
// exhausting it on transport failures returns the last error wrapped.
// A fetch never reports success and failure at once: (*Result, nil) or
// (nil, error).
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	userAgent   string

	// sleep is replaced in tests to avoid real waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Client. Zero-value fields fall back to the packaged
// defaults (6s timeout, 3 attempts, 1s base doubling to 30s, 1 req/s).
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 6 * time.Second
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 1 * time.Second
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 30 * time.Second
	}
	if cfg.BackoffMax < cfg.BackoffBase {
		cfg.BackoffMax = cfg.BackoffBase
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 1.0
	}
	if cfg.RateBurst < 1 {
		cfg.RateBurst = 3
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "horologium/1.0"
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase,
		backoffMax:  cfg.BackoffMax,
		userAgent:   cfg.UserAgent,
		sleep:       sleepContext,
	}
}

// Fetch executes a GET against url with retry, backoff, and rate-limit
// handling per the Client policy.
func (c *Client) Fetch(ctx context.Context, url string) (*Result, error) {
	delay := c.backoffBase
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		result, retryAfter, err := c.do(ctx, url)
		if err != nil {
			// A dead context is terminal, not a transport flake.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

			lastErr = err
			logging.Ctx(ctx).Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", c.maxAttempts).
				Str("url", url).
				Msg("Fetch attempt failed")

			if attempt == c.maxAttempts {
				break
			}
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return nil, sleepErr
			}
			delay = c.nextDelay(delay)
			continue
		}

		if result.StatusCode != http.StatusTooManyRequests {
			return result, nil
		}

		lastErr = ErrRateLimited
		if attempt == c.maxAttempts {
			break
		}

		// Respect Retry-After (RFC 6585) when the server supplied one
		retryDelay := delay
		if retryAfter > 0 {
			retryDelay = retryAfter
		}

		logging.Ctx(ctx).Warn().
			Dur("retry_delay", retryDelay).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Str("url", url).
			Msg("Rate limited (HTTP 429), retrying")

		if sleepErr := c.sleep(ctx, retryDelay); sleepErr != nil {
			return nil, sleepErr
		}
		delay = c.nextDelay(delay)
	}

	if errors.Is(lastErr, ErrRateLimited) {
		return nil, fmt.Errorf("%w after %d attempts", ErrRateLimited, c.maxAttempts)
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", c.maxAttempts, lastErr)
}

// FetchOnce executes a single rate-limited GET with no retry. The
// public-IP probe is one-shot; resolution providers use Fetch.
func (c *Client) FetchOnce(ctx context.Context, url string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	result, _, err := c.do(ctx, url)
	return result, err
}

// do performs a single GET. The returned retryAfter is non-zero only for
// a 429 response carrying a parseable Retry-After header.
func (c *Client) do(ctx context.Context, url string) (*Result, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var retryAfter time.Duration
	if resp.StatusCode == http.StatusTooManyRequests {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			// Seconds form only; HTTP-date Retry-After is rare on lookup APIs
			if seconds, parseErr := time.ParseDuration(ra + "s"); parseErr == nil {
				retryAfter = seconds
			}
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return &Result{StatusCode: resp.StatusCode, Body: body}, retryAfter, nil
}

// nextDelay doubles the backoff wait, capped at the configured ceiling.
func (c *Client) nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > c.backoffMax {
		d = c.backoffMax
	}
	return d
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
