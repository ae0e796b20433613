// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

// Package tzmap provides IANA timezone name helpers: the cheap shape check
// applied to provider results before they are cached, validation against
// the local zone database, and the IANA-to-Windows name translation used
// by the Windows apply path.
package tzmap

import (
	"fmt"
	"regexp"
	"time"

	// Embed the IANA database so ValidateLocal works on hosts without
	// a system zoneinfo directory (minimal containers, Windows).
	_ "time/tzdata"
)

// ianaShape matches the Region/City form of an IANA zone name, e.g.
// "Asia/Kolkata" or "America/Argentina/Buenos_Aires". It is a prefix
// match, not full validation; bare names like "UTC" are rejected on
// purpose because the lookup services answer with Region/City names and
// anything else is a garbage response.
var ianaShape = regexp.MustCompile(`^[A-Za-z_]+/[A-Za-z_+\-]+`)

// LooksLikeIANA reports whether tz has the Region/City shape of an IANA
// zone name. Provider results failing this check are discarded instead of
// cached.
func LooksLikeIANA(tz string) bool {
	return ianaShape.MatchString(tz)
}

// ValidateLocal checks tz against the zone database available on this
// host. This is the gate before mutating the system clock configuration
// on Linux: an unknown zone fails here rather than inside timedatectl.
func ValidateLocal(tz string) error {
	if tz == "" {
		return fmt.Errorf("timezone name is empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return nil
}

// WindowsName maps an IANA zone name to the Windows timezone name that
// tzutil accepts. Configured overrides win over the built-in table. The
// second return reports whether any mapping exists.
func WindowsName(tz string, overrides map[string]string) (string, bool) {
	if name, ok := overrides[tz]; ok {
		return name, true
	}
	name, ok := windowsNames[tz]
	return name, ok
}
