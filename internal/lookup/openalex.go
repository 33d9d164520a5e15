// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

// openAlexAPIBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlex queries the OpenAlex API as an alternate metadata service.
type OpenAlex struct {
	Client    *http.Client
	UserAgent string
	// Mailto is sent as the mailto parameter for polite-pool access.
	Mailto string
}

// Name returns the backend identifier.
func (o *OpenAlex) Name() string { return "openalex" }

// ByDOI resolves a DOI through OpenAlex's external-identifier form:
// GET /works/https://doi.org/{doi}. A 404 yields (nil, nil).
func (o *OpenAlex) ByDOI(ctx context.Context, doi string) (*types.MetadataRecord, error) {
	reqURL := openAlexAPIBase + "/https://doi.org/" + doi
	if o.Mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(o.Mailto)
	}

	resp, err := o.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var work openAlexWork
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return work.record(), nil
}

// ByTitle searches GET /works?filter=title.search:… and returns the top
// result, or (nil, nil) when the result set is empty.
func (o *OpenAlex) ByTitle(ctx context.Context, title string) (*types.MetadataRecord, error) {
	params := url.Values{
		"filter":   {"title.search:" + title},
		"per_page": {"1"},
	}
	if o.Mailto != "" {
		params.Set("mailto", o.Mailto)
	}

	resp, err := o.get(ctx, openAlexAPIBase+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexListResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	if len(oar.Results) == 0 {
		return nil, nil
	}
	return oar.Results[0].record(), nil
}

func (o *OpenAlex) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", o.UserAgent)

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	return resp, nil
}

// OpenAlex API JSON structures.
type openAlexListResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	Title       string `json:"title"`
	DisplayName string `json:"display_name"`
	DOI         string `json:"doi"`
}

func (w openAlexWork) record() *types.MetadataRecord {
	title := w.Title
	if title == "" {
		title = w.DisplayName
	}
	// OpenAlex returns DOIs in URL form; strip the resolver prefix.
	return &types.MetadataRecord{
		Title:  title,
		DOI:    strings.TrimPrefix(w.DOI, "https://doi.org/"),
		Source: "openalex",
	}
}
