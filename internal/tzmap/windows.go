// Horologium - Public IP Timezone Detection and System Clock Configuration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horologium

package tzmap

// windowsNames is the built-in IANA-to-Windows translation table, derived
// from the CLDR windowsZones mapping. It covers the zones public-IP
// geolocation commonly resolves to; the windows_names config section
// extends or overrides it without a rebuild.
var windowsNames = map[string]string{
	// Americas
	"America/Anchorage":   "Alaskan Standard Time",
	"America/Bogota":      "SA Pacific Standard Time",
	"America/Chicago":     "Central Standard Time",
	"America/Denver":      "Mountain Standard Time",
	"America/Halifax":     "Atlantic Standard Time",
	"America/Los_Angeles": "Pacific Standard Time",
	"America/Mexico_City": "Central Standard Time (Mexico)",
	"America/New_York":    "Eastern Standard Time",
	"America/Phoenix":     "US Mountain Standard Time",
	"America/Santiago":    "Pacific SA Standard Time",
	"America/Sao_Paulo":   "E. South America Standard Time",
	"America/Toronto":     "Eastern Standard Time",
	"America/Vancouver":   "Pacific Standard Time",
	"Pacific/Honolulu":    "Hawaiian Standard Time",

	// Europe
	"Europe/Amsterdam": "W. Europe Standard Time",
	"Europe/Athens":    "GTB Standard Time",
	"Europe/Berlin":    "W. Europe Standard Time",
	"Europe/Brussels":  "Romance Standard Time",
	"Europe/Bucharest": "GTB Standard Time",
	"Europe/Dublin":    "GMT Standard Time",
	"Europe/Helsinki":  "FLE Standard Time",
	"Europe/Istanbul":  "Turkey Standard Time",
	"Europe/Kyiv":      "FLE Standard Time",
	"Europe/Lisbon":    "GMT Standard Time",
	"Europe/London":    "GMT Standard Time",
	"Europe/Madrid":    "Romance Standard Time",
	"Europe/Moscow":    "Russian Standard Time",
	"Europe/Paris":     "Romance Standard Time",
	"Europe/Prague":    "Central Europe Standard Time",
	"Europe/Rome":      "W. Europe Standard Time",
	"Europe/Stockholm": "W. Europe Standard Time",
	"Europe/Vienna":    "W. Europe Standard Time",
	"Europe/Warsaw":    "Central European Standard Time",
	"Europe/Zurich":    "W. Europe Standard Time",

	// Africa and Middle East
	"Africa/Cairo":        "Egypt Standard Time",
	"Africa/Johannesburg": "South Africa Standard Time",
	"Africa/Lagos":        "W. Central Africa Standard Time",
	"Africa/Nairobi":      "E. Africa Standard Time",
	"Asia/Dubai":          "Arabian Standard Time",
	"Asia/Jerusalem":      "Israel Standard Time",
	"Asia/Riyadh":         "Arab Standard Time",
	"Asia/Tehran":         "Iran Standard Time",

	// Asia
	"Asia/Bangkok":   "SE Asia Standard Time",
	"Asia/Calcutta":  "India Standard Time", // legacy alias still served by some providers
	"Asia/Dhaka":     "Bangladesh Standard Time",
	"Asia/Hong_Kong": "China Standard Time",
	"Asia/Jakarta":   "SE Asia Standard Time",
	"Asia/Karachi":   "Pakistan Standard Time",
	"Asia/Kolkata":   "India Standard Time",
	"Asia/Manila":    "Singapore Standard Time",
	"Asia/Seoul":     "Korea Standard Time",
	"Asia/Shanghai":  "China Standard Time",
	"Asia/Singapore": "Singapore Standard Time",
	"Asia/Taipei":    "Taipei Standard Time",
	"Asia/Tokyo":     "Tokyo Standard Time",

	// Oceania
	"Australia/Adelaide":  "Cen. Australia Standard Time",
	"Australia/Brisbane":  "E. Australia Standard Time",
	"Australia/Melbourne": "AUS Eastern Standard Time",
	"Australia/Perth":     "W. Australia Standard Time",
	"Australia/Sydney":    "AUS Eastern Standard Time",
	"Pacific/Auckland":    "New Zealand Standard Time",
}
