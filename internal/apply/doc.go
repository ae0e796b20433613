// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

/*
Package apply decides whether and how a resolved timezone reaches the
system clock.

# Decision Sequence

The platform gate runs first: only Linux (timedatectl) and Windows
(tzutil) have apply strategies, and any other platform is a distinct
terminal outcome regardless of the dry-run and force flags.

On a supported platform the sequence is:

 1. Dry run (the default): report the exact command that would run and
    stop. On Windows the IANA-to-Windows name lookup still happens so
    the report shows the real native name, and a missing mapping makes
    the dry run itself a failure. No command is ever invoked.
 2. Confirmation: unless forced, the operator must type exactly "YES".
    Any other answer aborts without error.
 3. Validation: Linux checks the zone against the local timezone
    database before timedatectl sees it; Windows requires a name-table
    hit before tzutil is built. Validation failures never reach the
    OS command.
 4. Invocation: the command runs through the Commander collaborator,
    and its combined output is folded into any returned error.

# Collaborators

Commander and Confirmer are interfaces so tests can walk every branch
of the state machine without touching the host or a terminal. The
zero-value Options wire the real system equivalents.
*/
package apply
