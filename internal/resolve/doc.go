// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

/*
Package resolve turns a public IP address into an IANA timezone name.

# Provider Chain

Resolution walks an ordered chain of providers and stops at the first
usable answer:

 1. TextProvider — a service that returns the timezone as the raw
    response body (ipapi.co).
 2. JSONProvider — a service that returns a JSON document with a
    "timezone" field (worldtimeapi.org).
 3. BrowserProvider — a headless browser renders a page that reports
    the viewer's timezone. Last resort, disabled unless configured.

Providers that report themselves unavailable are skipped without
counting as failures. A provider error is logged at debug level and
the chain moves on; resolution as a whole only fails when every
provider has been exhausted, which surfaces as ErrNoTimezone.

# Answer Hygiene

Every provider answer passes through a shape check before it is used
or cached: only "Area/Location" style names are accepted. Lookup
services fail in creative ways — HTML error pages served with a 200,
bare country names, the literal string "Undefined" — and none of those
may reach the cache or the system clock.

# Caching

Accepted answers are written through to the cache.Store, so later runs
from the same address skip the network entirely. The store is optional
and its failures are absorbed by the cache package.
*/
package resolve
