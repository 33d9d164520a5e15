// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify sequences identifier extraction, metadata lookup, and title
// matching over a reference list and aggregates the per-entry outcomes into
// a run summary.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/refcheck/internal/doi"
	"github.com/pdiddy/refcheck/internal/lookup"
	"github.com/pdiddy/refcheck/internal/match"
	"github.com/pdiddy/refcheck/pkg/types"
)

// ErrNoReferences is returned when there are no entries to check. It is a
// terminal "nothing to do" state, not a processing failure.
var ErrNoReferences = errors.New("no references detected in input")

// Options configures a verification run.
type Options struct {
	// Tolerance is the maximum edit distance for a fuzzy title match.
	Tolerance int

	// TitleFallback enables looking up entries without a DOI by their raw
	// text as a title query. Off by default: such entries are classified
	// NoIdentifier without any network call.
	TitleFallback bool
}

// Run checks each reference in order against the metadata backend and
// returns the aggregate summary. A per-entry trace is written to w as
// entries complete, so callers can stream progress.
//
// Failures are local to an entry: a lookup error flags that entry and
// processing continues. When ctx is cancelled, Run stops before the next
// entry and returns the partial summary alongside the context error;
// outcomes already produced remain valid.
func Run(ctx context.Context, refs []types.Reference, backend lookup.Backend, opts Options, w io.Writer) (*types.RunSummary, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}

	sum := &types.RunSummary{Total: len(refs)}
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		out := checkEntry(ctx, ref, backend, opts)
		sum.Add(out)
		writeTrace(w, out, len(refs))
	}
	return sum, nil
}

// checkEntry classifies a single reference. Every entry resolves to exactly
// one classification; lookup errors collapse to "not found".
func checkEntry(ctx context.Context, ref types.Reference, backend lookup.Backend, opts Options) types.Outcome {
	out := types.Outcome{Reference: ref}

	out.DOI = doi.Extract(ref.Text)
	if out.DOI == "" && !opts.TitleFallback {
		out.Classification = types.ClassNoIdentifier
		return out
	}

	var rec *types.MetadataRecord
	var err error
	if out.DOI != "" {
		rec, err = backend.ByDOI(ctx, out.DOI)
	} else {
		rec, err = backend.ByTitle(ctx, ref.Text)
	}
	if err != nil || rec == nil {
		out.Classification = types.ClassNotFound
		return out
	}

	out.Title = rec.Title
	out.Match = match.Title(rec.Title, ref.Text, opts.Tolerance)
	if out.Match.Matched {
		out.Classification = types.ClassVerified
	} else {
		out.Classification = types.ClassTitleMismatch
	}
	return out
}

// writeTrace prints the per-entry progress lines.
func writeTrace(w io.Writer, out types.Outcome, total int) {
	fmt.Fprintf(w, "[%d/%d] %s\n", out.Reference.Ordinal, total, out.Reference.Text)

	switch out.Classification {
	case types.ClassNoIdentifier:
		fmt.Fprintln(w, "  no DOI found (not verifiable)")
	case types.ClassNotFound:
		if out.DOI != "" {
			fmt.Fprintf(w, "  DOI: %s\n", out.DOI)
		}
		fmt.Fprintln(w, "  not found in metadata source (flagged)")
	case types.ClassTitleMismatch:
		if out.DOI != "" {
			fmt.Fprintf(w, "  DOI: %s\n", out.DOI)
		}
		fmt.Fprintf(w, "  found: %s\n", out.Title)
		fmt.Fprintln(w, "  title mismatch (flagged)")
	case types.ClassVerified:
		if out.DOI != "" {
			fmt.Fprintf(w, "  DOI: %s\n", out.DOI)
		}
		fmt.Fprintf(w, "  found: %s\n", out.Title)
		if out.Match.UsedTolerance {
			fmt.Fprintln(w, "  title matches (within tolerance)")
		} else {
			fmt.Fprintln(w, "  title matches")
		}
	}
}
