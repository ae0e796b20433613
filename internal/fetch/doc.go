// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

/*
Package fetch provides the resilient HTTP fetcher shared by every external
lookup in the pipeline.

The free lookup services this tool depends on rate limit aggressively and
flake routinely, so all of their traffic funnels through one Client that
owns the retry budget, the exponential backoff schedule, and a process-wide
token bucket (golang.org/x/time/rate).

# Outcome Policy

A fetch has exactly two outcomes:

  - (*Result, nil): a terminal HTTP response was obtained. 200 means the
    body is usable; any other status is the caller's decision. The fetcher
    never retries a non-429 status because a 404 or 500 from these
    services is a semantic answer, not a transient fault.
  - (nil, error): the attempt budget is spent. ErrRateLimited (match with
    errors.Is) when 429s consumed the budget, the wrapped transport error
    otherwise.

Both exhaustion modes surface through the same error channel so callers
treat "provider yielded nothing" uniformly.

# Backoff

The wait before each retry starts at BackoffBase, doubles per retry, and
caps at BackoffMax. A 429 response carrying a parseable Retry-After header
overrides the computed wait for that retry. Waits are context-aware and
abort immediately on cancellation.
*/
package fetch
