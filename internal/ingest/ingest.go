// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest flattens input documents into plain text. The verification
// core is agnostic to where its text came from; this package handles the
// pasted-text, text-file, and PDF origins.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extractor produces plain text from a named input file.
type Extractor interface {
	Extract(path string) (string, error)
}

// Text reads a file as UTF-8 plain text.
type Text struct{}

// Extract returns the file contents.
func (Text) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// FromFile flattens the file at path into text, dispatching on extension:
// .pdf goes through the PDF extractor, everything else is read as plain
// text. The second return value reports whether the input was a full
// document (a PDF), whose reference section still needs locating.
func FromFile(path string) (string, bool, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := PDF{}.Extract(path)
		return text, true, err
	}
	text, err := Text{}.Extract(path)
	return text, false, err
}

// FromReader drains r (typically stdin) into a string.
func FromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
