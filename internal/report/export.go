// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refcheck/pkg/types"
)

// WriteYAML marshals the run summary to w for machine consumption.
func WriteYAML(sum *types.RunSummary, w io.Writer) error {
	data, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// WriteText prints the human-readable summary report: counts, percentages,
// and the flagged and unverifiable entries.
func WriteText(sum *types.RunSummary, w io.Writer) {
	fmt.Fprintln(w, "Summary")
	fmt.Fprintf(w, "  %d of %d (%.1f%%) references contain a DOI\n",
		sum.WithIdentifier, sum.Total, sum.PercentWithIdentifier())
	if sum.WithIdentifier > 0 {
		fmt.Fprintf(w, "  verified correct:       %d / %d (%.1f%%)\n",
			sum.Verified, sum.WithIdentifier, sum.PercentVerified())
		fmt.Fprintf(w, "  potentially incorrect:  %d / %d (%.1f%%)\n",
			sum.Mismatched, sum.WithIdentifier, sum.PercentMismatched())
	}

	if len(sum.FlaggedEntries) > 0 {
		fmt.Fprintln(w, "\nPotentially incorrect or fabricated references:")
		for i, text := range sum.FlaggedEntries {
			fmt.Fprintf(w, "  %d. %s\n", i+1, text)
		}
	}
	if len(sum.NoIdentifierEntries) > 0 {
		fmt.Fprintln(w, "\nReferences without a DOI (not verifiable):")
		for i, text := range sum.NoIdentifierEntries {
			fmt.Fprintf(w, "  %d. %s\n", i+1, text)
		}
	}

	if sum.AllVerified() {
		fmt.Fprintln(w, "\nAll references appear correct.")
	}
}
