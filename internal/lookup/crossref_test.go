// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleCrossRefWork = `{
  "message": {
    "DOI": "10.1000/xyz123",
    "title": ["A Study of Widgets"]
  }
}`

const sampleCrossRefList = `{
  "message": {
    "items": [
      {"DOI": "10.1000/xyz123", "title": ["A Study of Widgets"]}
    ]
  }
}`

func newCrossRef() *CrossRef {
	return &CrossRef{
		Client:    &http.Client{Timeout: 5 * time.Second},
		UserAgent: "refcheck-test/0.1",
		Mailto:    "dev@example.org",
	}
}

func TestCrossRefByDOI(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleCrossRefWork))
	}))
	defer ts.Close()

	orig := crossrefAPIBase
	crossrefAPIBase = ts.URL + "/works"
	defer func() { crossrefAPIBase = orig }()

	rec, err := newCrossRef().ByDOI(context.Background(), "10.1000/xyz123")
	if err != nil {
		t.Fatalf("ByDOI() error: %v", err)
	}
	if rec == nil {
		t.Fatal("ByDOI() = nil record, want a record")
	}
	if rec.Title != "A Study of Widgets" {
		t.Errorf("Title = %q, want %q", rec.Title, "A Study of Widgets")
	}
	if rec.Source != "crossref" {
		t.Errorf("Source = %q, want crossref", rec.Source)
	}
	if gotPath != "/works/10.1000/xyz123" {
		t.Errorf("request path = %q, want /works/10.1000/xyz123", gotPath)
	}
	if !strings.Contains(gotQuery, "mailto=") {
		t.Errorf("query = %q, want mailto parameter", gotQuery)
	}
	if gotUA != "refcheck-test/0.1" {
		t.Errorf("User-Agent = %q, want refcheck-test/0.1", gotUA)
	}
}

func TestCrossRefByDOINotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	orig := crossrefAPIBase
	crossrefAPIBase = ts.URL + "/works"
	defer func() { crossrefAPIBase = orig }()

	rec, err := newCrossRef().ByDOI(context.Background(), "10.9999/fake000")
	if err != nil {
		t.Fatalf("ByDOI() error: %v", err)
	}
	if rec != nil {
		t.Errorf("ByDOI() = %+v, want nil record for 404", rec)
	}
}

func TestCrossRefByDOIServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	orig := crossrefAPIBase
	crossrefAPIBase = ts.URL + "/works"
	defer func() { crossrefAPIBase = orig }()

	_, err := newCrossRef().ByDOI(context.Background(), "10.1000/xyz123")
	if err == nil {
		t.Fatal("ByDOI() error = nil, want error for HTTP 500")
	}
}

func TestCrossRefByTitle(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleCrossRefList))
	}))
	defer ts.Close()

	orig := crossrefAPIBase
	crossrefAPIBase = ts.URL + "/works"
	defer func() { crossrefAPIBase = orig }()

	rec, err := newCrossRef().ByTitle(context.Background(), "A Study of Widgets")
	if err != nil {
		t.Fatalf("ByTitle() error: %v", err)
	}
	if rec == nil || rec.DOI != "10.1000/xyz123" {
		t.Fatalf("ByTitle() = %+v, want record with DOI 10.1000/xyz123", rec)
	}
	if !strings.Contains(gotQuery, "rows=1") {
		t.Errorf("query = %q, want rows=1", gotQuery)
	}
}

func TestCrossRefByTitleEmptyResultSet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message": {"items": []}}`))
	}))
	defer ts.Close()

	orig := crossrefAPIBase
	crossrefAPIBase = ts.URL + "/works"
	defer func() { crossrefAPIBase = orig }()

	rec, err := newCrossRef().ByTitle(context.Background(), "Nonexistent Paper")
	if err != nil {
		t.Fatalf("ByTitle() error: %v", err)
	}
	if rec != nil {
		t.Errorf("ByTitle() = %+v, want nil record for empty result set", rec)
	}
}

func TestCrossRefPlusToken(t *testing.T) {
	var gotToken string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("Crossref-Plus-API-Token")
		w.Write([]byte(sampleCrossRefWork))
	}))
	defer ts.Close()

	orig := crossrefAPIBase
	crossrefAPIBase = ts.URL + "/works"
	defer func() { crossrefAPIBase = orig }()

	c := newCrossRef()
	c.PlusToken = "tok-123"
	if _, err := c.ByDOI(context.Background(), "10.1000/xyz123"); err != nil {
		t.Fatalf("ByDOI() error: %v", err)
	}
	if gotToken != "Bearer tok-123" {
		t.Errorf("Crossref-Plus-API-Token = %q, want %q", gotToken, "Bearer tok-123")
	}
}
