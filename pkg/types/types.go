// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the refcheck pipeline:
// segmented references, metadata lookup records, per-entry outcomes, and the
// aggregate run summary.
package types

// Reference is one segmented citation entry from the input text.
type Reference struct {
	// Ordinal is the 1-based position of the entry in the input. It is
	// stable and matches display order.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	// Text is the trimmed citation text.
	Text string `json:"text" yaml:"text"`
}

// MetadataRecord is the result of resolving an identifier or title query
// against a scholarly metadata service.
type MetadataRecord struct {
	// Title is the canonical work title as returned by the service. May be
	// empty when the service has a record but no title.
	Title string `json:"title" yaml:"title"`

	// DOI is the canonical identifier from the record, when present.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Source identifies which backend produced the record (e.g. "crossref").
	Source string `json:"source" yaml:"source"`
}

// MatchResult is the outcome of comparing a canonical title against a
// reference entry.
type MatchResult struct {
	// Matched reports whether the title was found in the reference text.
	Matched bool `json:"matched" yaml:"matched"`

	// UsedTolerance is true when only the approximate (edit-distance)
	// search succeeded, not an exact substring match.
	UsedTolerance bool `json:"used_tolerance" yaml:"used_tolerance"`
}

// Classification is the per-reference verdict.
type Classification string

const (
	// ClassNoIdentifier means no DOI-shaped token was found in the entry.
	ClassNoIdentifier Classification = "no_identifier"

	// ClassNotFound means the metadata service returned no record for the
	// entry's identifier (or the lookup failed; the two are deliberately
	// not distinguished).
	ClassNotFound Classification = "not_found"

	// ClassTitleMismatch means a record was found but its canonical title
	// does not appear in the entry, even within the configured tolerance.
	ClassTitleMismatch Classification = "title_mismatch"

	// ClassVerified means the record's canonical title appears in the entry.
	ClassVerified Classification = "verified"
)

// Flagged reports whether the classification warrants human review.
func (c Classification) Flagged() bool {
	return c == ClassNotFound || c == ClassTitleMismatch
}

// Outcome holds the full per-entry result: the entry, its extracted
// identifier (if any), the canonical title found (if any), the match result,
// and the final classification.
type Outcome struct {
	Reference Reference `json:"reference" yaml:"reference"`

	// DOI is the identifier extracted from the entry text; empty when none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Title is the canonical title from the metadata record, when one was found.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Match MatchResult `json:"match" yaml:"match"`

	Classification Classification `json:"classification" yaml:"classification"`
}

// RunSummary aggregates the outcomes of one verification run. It is built
// incrementally as entries complete and discarded after reporting.
type RunSummary struct {
	// Total is the number of reference entries processed.
	Total int `json:"total" yaml:"total"`

	// WithIdentifier counts entries containing a DOI.
	WithIdentifier int `json:"with_identifier" yaml:"with_identifier"`

	// Verified counts entries whose canonical title matched.
	Verified int `json:"verified" yaml:"verified"`

	// Mismatched counts entries flagged as potentially fabricated: title
	// mismatches plus identifiers the metadata service does not know.
	Mismatched int `json:"mismatched" yaml:"mismatched"`

	// NoIdentifier counts entries with no DOI (not verifiable).
	NoIdentifier int `json:"no_identifier" yaml:"no_identifier"`

	// FlaggedEntries lists the texts of mismatched and not-found entries,
	// in input order.
	FlaggedEntries []string `json:"flagged_entries,omitempty" yaml:"flagged_entries,omitempty"`

	// NoIdentifierEntries lists the texts of entries without a DOI, in
	// input order.
	NoIdentifierEntries []string `json:"no_identifier_entries,omitempty" yaml:"no_identifier_entries,omitempty"`

	// Outcomes holds the per-entry results in input order.
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Add folds one per-entry outcome into the summary. Entries must be added in
// input order; the flagged and no-identifier lists preserve it.
func (s *RunSummary) Add(out Outcome) {
	s.Outcomes = append(s.Outcomes, out)

	if out.DOI != "" {
		s.WithIdentifier++
	}

	switch out.Classification {
	case ClassVerified:
		s.Verified++
	case ClassNotFound, ClassTitleMismatch:
		s.Mismatched++
		s.FlaggedEntries = append(s.FlaggedEntries, out.Reference.Text)
	case ClassNoIdentifier:
		s.NoIdentifier++
		s.NoIdentifierEntries = append(s.NoIdentifierEntries, out.Reference.Text)
	}
}

// AllVerified reports whether every entry with an identifier checked out.
func (s *RunSummary) AllVerified() bool {
	return s.Mismatched == 0
}

// PercentWithIdentifier returns the share of entries containing a DOI, as a
// percentage of the total. Zero when the summary is empty.
func (s *RunSummary) PercentWithIdentifier() float64 {
	return percent(s.WithIdentifier, s.Total)
}

// PercentVerified returns the share of verified entries as a percentage of
// the entries with an identifier.
func (s *RunSummary) PercentVerified() float64 {
	return percent(s.Verified, s.WithIdentifier)
}

// PercentMismatched returns the share of flagged entries as a percentage of
// the entries with an identifier.
func (s *RunSummary) PercentMismatched() float64 {
	return percent(s.Mismatched, s.WithIdentifier)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
