// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

var (
	// authorYearRe matches the start of an author-year citation: a
	// capitalized word, a comma, and a four-digit year in parentheses later
	// on the line. A synthetic blank line is inserted before such lines so
	// author-year lists that lack explicit numbering still segment.
	authorYearRe = regexp.MustCompile(`(?m)^([A-Z][a-z]+, .*?\(\d{4}\))`)

	// splitterRe matches entry delimiters, each consumed as a boundary:
	// a line-start bracketed number, number-period, or number-parenthesis,
	// or a blank-line gap. Alternation order is the tie-break precedence.
	splitterRe = regexp.MustCompile(`(?m)(?:^(?:\[\d+\]|\d+\.)\s+)|(?:^\d+\)\s+)|(?:\n{2,})`)

	// bareDelimiterRe matches a piece that is nothing but a delimiter token.
	bareDelimiterRe = regexp.MustCompile(`^(?:\[\d+\]|\d+\.|\d+\))$`)
)

// Split divides normalized text into individual reference strings. It
// tolerates bracketed numbering, number-period and number-parenthesis
// numbering, blank-line separation, and unnumbered author-year lists, all
// mixed within one input. Pieces that are empty or bare delimiter tokens are
// discarded; the rest are returned trimmed, in original order.
func Split(text string) []string {
	text = authorYearRe.ReplaceAllString(text, "\n$1")

	var refs []string
	for _, part := range splitterRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" || bareDelimiterRe.MatchString(part) {
			continue
		}
		refs = append(refs, part)
	}
	return refs
}

// Extract runs the full segmentation pipeline on raw input: heading removal,
// normalization, then splitting. Entries are numbered from 1 in input order.
func Extract(raw string) []types.Reference {
	text := StripHeading(raw)
	text = Normalize(text)

	parts := Split(text)
	refs := make([]types.Reference, 0, len(parts))
	for i, part := range parts {
		refs = append(refs, types.Reference{Ordinal: i + 1, Text: part})
	}
	return refs
}
