// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/refcheck/pkg/types"
)

func sampleSummary() *types.RunSummary {
	sum := &types.RunSummary{Total: 3}
	sum.Add(types.Outcome{
		Reference:      types.Reference{Ordinal: 1, Text: "Smith. First Paper. 10.1000/aaa111."},
		DOI:            "10.1000/aaa111",
		Title:          "First Paper",
		Match:          types.MatchResult{Matched: true},
		Classification: types.ClassVerified,
	})
	sum.Add(types.Outcome{
		Reference:      types.Reference{Ordinal: 2, Text: "Jones. Unknown Work. 10.9999/zzz999."},
		DOI:            "10.9999/zzz999",
		Classification: types.ClassNotFound,
	})
	sum.Add(types.Outcome{
		Reference:      types.Reference{Ordinal: 3, Text: "Brown. No Identifier Here."},
		Classification: types.ClassNoIdentifier,
	})
	return sum
}

func TestStoreSaveAndList(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	meta := RunMeta{Started: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC), Tolerance: 2, Backend: "crossref"}
	runID, err := s.Save(sampleSummary(), meta)
	require.NoError(t, err)
	assert.Positive(t, runID)

	runs, err := s.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, runID, r.ID)
	assert.Equal(t, 2, r.Tolerance)
	assert.Equal(t, "crossref", r.Backend)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.WithIdentifier)
	assert.Equal(t, 1, r.Verified)
	assert.Equal(t, 1, r.Mismatched)
	assert.Equal(t, 1, r.NoIdentifier)
	assert.Equal(t, meta.Started, r.Started)
}

func TestStoreOutcomesOrdered(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	runID, err := s.Save(sampleSummary(), RunMeta{Started: time.Now(), Backend: "crossref"})
	require.NoError(t, err)

	outs, err := s.Outcomes(runID)
	require.NoError(t, err)
	require.Len(t, outs, 3)

	for i, out := range outs {
		assert.Equal(t, i+1, out.Reference.Ordinal)
	}
	assert.Equal(t, types.ClassVerified, outs[0].Classification)
	assert.Equal(t, types.ClassNotFound, outs[1].Classification)
	assert.Equal(t, types.ClassNoIdentifier, outs[2].Classification)
}

func TestStoreRunsMostRecentFirst(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	first, err := s.Save(sampleSummary(), RunMeta{Started: time.Now(), Backend: "crossref"})
	require.NoError(t, err)
	second, err := s.Save(sampleSummary(), RunMeta{Started: time.Now(), Backend: "openalex"})
	require.NoError(t, err)

	runs, err := s.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	WriteText(sampleSummary(), &buf)
	out := buf.String()

	assert.Contains(t, out, "2 of 3 (66.7%) references contain a DOI")
	assert.Contains(t, out, "verified correct:       1 / 2 (50.0%)")
	assert.Contains(t, out, "Potentially incorrect or fabricated references:")
	assert.Contains(t, out, "Jones. Unknown Work.")
	assert.Contains(t, out, "References without a DOI (not verifiable):")
	assert.Contains(t, out, "Brown. No Identifier Here.")
	assert.NotContains(t, out, "All references appear correct")
}

func TestWriteTextAllVerified(t *testing.T) {
	sum := &types.RunSummary{Total: 1}
	sum.Add(types.Outcome{
		Reference:      types.Reference{Ordinal: 1, Text: "Smith. First Paper. 10.1000/aaa111."},
		DOI:            "10.1000/aaa111",
		Classification: types.ClassVerified,
	})

	var buf bytes.Buffer
	WriteText(sum, &buf)
	assert.Contains(t, buf.String(), "All references appear correct.")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(sampleSummary(), &buf))

	out := buf.String()
	assert.Contains(t, out, "total: 3")
	assert.Contains(t, out, "with_identifier: 2")
	assert.True(t, strings.Contains(out, "classification: verified"), "yaml should carry per-entry outcomes:\n%s", out)
}
