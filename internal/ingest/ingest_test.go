// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.txt")
	content := "References\n1. Smith, J. (2020). A Study of Widgets.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Text{}.Extract(path)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got != content {
		t.Errorf("Extract() = %q, want %q", got, content)
	}
}

func TestTextExtractMissingFile(t *testing.T) {
	_, err := Text{}.Extract(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Extract() error = nil, want error for missing file")
	}
}

func TestFromFileDispatch(t *testing.T) {
	dir := t.TempDir()
	txtPath := filepath.Join(dir, "refs.txt")
	if err := os.WriteFile(txtPath, []byte("1. Smith.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, fullDoc, err := FromFile(txtPath)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	if fullDoc {
		t.Error("fullDoc = true, want false for a text file")
	}
	if text != "1. Smith.\n" {
		t.Errorf("text = %q", text)
	}

	// A .pdf path dispatches to the PDF extractor; a bogus file errors.
	bogus := filepath.Join(dir, "not-really.pdf")
	if err := os.WriteFile(bogus, []byte("plain text, not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := FromFile(bogus); err == nil {
		t.Error("FromFile() error = nil, want error for invalid PDF")
	}
}

func TestFromReader(t *testing.T) {
	got, err := FromReader(strings.NewReader("pasted references"))
	if err != nil {
		t.Fatalf("FromReader() error: %v", err)
	}
	if got != "pasted references" {
		t.Errorf("FromReader() = %q", got)
	}
}
