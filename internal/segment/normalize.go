// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment turns raw reference-list text into discrete citation
// entries: it normalizes line wrapping, strips section headings, and splits
// the text on the numbering and spacing conventions found in the wild.
package segment

import (
	"regexp"
	"strings"
)

// terminatedRe matches a line whose trailing content looks like the end of a
// sentence or clause: a letter or digit, optionally followed by one
// punctuation mark. Lines that do not look terminated are treated as
// soft-wrapped continuations of the next line.
var terminatedRe = regexp.MustCompile(`[A-Za-z0-9][.?!;:]?\s*$`)

// Normalize canonicalizes line endings and re-joins soft-wrapped lines.
// Blank lines are preserved as explicit empty logical lines; they are
// significant delimiters for segmentation. Wrapped lines are merged with a
// single separating space.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var merged []string
	var buffer string

	flush := func() {
		if buffer != "" {
			merged = append(merged, strings.TrimSpace(buffer))
			buffer = ""
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimRight(line, " \t")
		switch {
		case stripped == "":
			flush()
			merged = append(merged, "")
		case terminatedRe.MatchString(stripped):
			if buffer != "" {
				buffer += " " + strings.TrimSpace(stripped)
				flush()
			} else {
				merged = append(merged, stripped)
			}
		default:
			if buffer != "" {
				buffer += " " + strings.TrimSpace(stripped)
			} else {
				buffer = stripped
			}
		}
	}
	flush()

	return strings.Join(merged, "\n")
}
