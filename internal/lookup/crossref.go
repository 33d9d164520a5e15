// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/refcheck/internal/httputil"
	"github.com/pdiddy/refcheck/pkg/types"
)

// crossrefAPIBase is the CrossRef Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossRef queries the CrossRef REST API. Requests carry a mailto parameter
// for polite-pool access and, when configured, a Crossref-Plus-API-Token.
type CrossRef struct {
	Client     *http.Client
	UserAgent  string
	Mailto     string
	PlusToken  string
	MaxRetries int
}

// Name returns the backend identifier.
func (c *CrossRef) Name() string { return "crossref" }

// ByDOI resolves a DOI via GET /works/{doi}. A 404 means the DOI is not
// registered and yields (nil, nil).
func (c *CrossRef) ByDOI(ctx context.Context, doi string) (*types.MetadataRecord, error) {
	reqURL := crossrefAPIBase + "/" + doi
	if c.Mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.Mailto)
	}

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefWorkResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}
	return cr.Message.record(), nil
}

// ByTitle searches GET /works?query.title=…&rows=1 and returns the top
// result, or (nil, nil) when the result set is empty.
func (c *CrossRef) ByTitle(ctx context.Context, title string) (*types.MetadataRecord, error) {
	params := url.Values{
		"query.title": {title},
		"rows":        {"1"},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	resp, err := c.get(ctx, crossrefAPIBase+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefListResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}
	if len(cr.Message.Items) == 0 {
		return nil, nil
	}
	return cr.Message.Items[0].record(), nil
}

func (c *CrossRef) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.PlusToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", err)
	}
	return resp, nil
}

// CrossRef API JSON structures.
type crossrefWorkResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefListResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	Title []string `json:"title"`
	DOI   string   `json:"DOI"`
}

func (w crossrefWork) record() *types.MetadataRecord {
	rec := &types.MetadataRecord{DOI: w.DOI, Source: "crossref"}
	if len(w.Title) > 0 {
		rec.Title = w.Title[0]
	}
	return rec
}
