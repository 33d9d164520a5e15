// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF flattens a PDF document into plain text, page by page.
type PDF struct {
	// MaxPages bounds how many pages are read; zero or negative means all.
	MaxPages int
}

// Extract returns the concatenated text of the document's pages. Pages that
// fail to decode are skipped rather than failing the whole document.
func (p PDF) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	maxPages := p.MaxPages
	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
