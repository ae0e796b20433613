// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

/*
Package cache provides the durable IP-to-timezone store consulted before
any network lookup.

A host's public IP changes rarely, so a hit here answers the whole
resolution question with zero network traffic. Entries never expire and
are never evicted; the mapping is written through on every successful
resolution.

# Backends

Two implementations of the Store interface:

  - FileStore (default): one pretty-printed JSON object in a file under
    the user's home directory. Readable, greppable, trivially portable.
  - BadgerStore: an embedded BadgerDB directory with prefixed keys, for
    installations tracking many addresses.

Open selects the backend from CacheConfig.

# Failure Contract

Every failure mode inside this package is swallowed and logged. Load
returns an empty map for absent, unreadable, or corrupt data; Save logs
and gives up. The pipeline treats the cache as an accelerator, never a
dependency: a broken cache costs network calls, not correctness.
*/
package cache
