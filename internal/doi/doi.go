// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi locates DOI-shaped identifiers in free text.
package doi

import (
	"regexp"
	"strings"
)

// pattern matches a DOI: "10." + registrant code (4-9 digits) + "/" + suffix.
// Case-insensitive so lowercased and uppercased suffixes both match.
var pattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:a-z0-9]+`)

// Extract returns the first DOI found in text, with trailing sentence
// punctuation stripped, or the empty string when none is present. A text
// containing several DOI-shaped tokens is treated as having exactly the
// first one.
func Extract(text string) string {
	m := pattern.FindString(text)
	if m == "" {
		return ""
	}
	return strings.TrimRight(m, " .;,")
}

// Valid reports whether s on its own is a plausible DOI. Extract already
// returns valid tokens; Valid is for caller-supplied identifiers.
func Valid(s string) bool {
	if !strings.HasPrefix(s, "10.") {
		return false
	}
	return pattern.FindString(s) == s
}
