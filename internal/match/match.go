// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether a canonical work title appears inside noisy
// citation text, exactly or within a bounded edit-distance tolerance.
package match

import (
	"strings"
	"unicode"

	"github.com/pdiddy/refcheck/pkg/types"
)

// Title reports whether the canonical title is present in the reference
// text. Both strings are normalized to bare lowercase alphanumerics first,
// so punctuation, spacing, and case differences do not matter.
//
// An exact substring match is the fast path. When tolerance is positive and
// the exact match fails, a window of the title's length slides across the
// reference text and the Levenshtein distance of each window against the
// title is computed; any window within tolerance is a match. A title longer
// than the reference text is compared against it whole. Increasing the
// tolerance never turns a match into a non-match.
func Title(canonical, reference string, tolerance int) types.MatchResult {
	title := normalize(canonical)
	ref := normalize(reference)

	if strings.Contains(ref, title) {
		return types.MatchResult{Matched: true}
	}
	if tolerance <= 0 {
		return types.MatchResult{}
	}

	if withinTolerance(title, ref, tolerance) {
		return types.MatchResult{Matched: true, UsedTolerance: true}
	}
	return types.MatchResult{}
}

// normalize strips every rune that is not a letter or digit and lowercases
// the remainder.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// withinTolerance performs the bounded approximate-substring search over
// normalized strings.
func withinTolerance(title, ref string, tolerance int) bool {
	t := []rune(title)
	r := []rune(ref)

	if len(t) > len(r) {
		return Distance(title, ref) <= tolerance
	}
	for i := 0; i+len(t) <= len(r); i++ {
		if levenshtein(t, r[i:i+len(t)]) <= tolerance {
			return true
		}
	}
	return false
}

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-rune insertions, deletions, and substitutions
// needed to transform one into the other. The result is symmetric.
func Distance(a, b string) int {
	return levenshtein([]rune(a), []rune(b))
}

// levenshtein is the standard two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
