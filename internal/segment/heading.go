// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "strings"

// headings is the multilingual section-heading vocabulary. Matching is
// case-insensitive against the whole trimmed line.
var headings = []string{
	"references",
	"referenties",
	"reference",
	"citations",
	"bibliography",
	"literature cited",
	"sources",
	"work cited",
}

// isHeading reports whether the trimmed line is exactly a section heading.
func isHeading(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	for _, h := range headings {
		if line == h {
			return true
		}
	}
	return false
}

// StripHeading removes every line that is exactly (trimmed,
// case-insensitively) a recognized section heading. Lines that merely
// contain a heading word inside a longer sentence are kept.
func StripHeading(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isHeading(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ReferencesSection returns the text following the last line that starts
// with a section heading, for locating a reference list inside full-document
// text (a flattened PDF, for example). When no heading line is found the
// input is returned unchanged.
func ReferencesSection(text string) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		for _, h := range headings {
			if strings.HasPrefix(trimmed, h) {
				start = i
				break
			}
		}
	}
	if start < 0 {
		return text
	}
	return strings.Join(lines[start+1:], "\n")
}
