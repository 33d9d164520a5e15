// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "refcheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LookupBackend identifies the metadata lookup service.
type LookupBackend string

const (
	BackendCrossRef LookupBackend = "crossref"
	BackendOpenAlex LookupBackend = "openalex"
)

// LookupConfig holds settings for the metadata lookup collaborator.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the metadata service: crossref (default) or openalex.
	Backend LookupBackend `json:"backend" yaml:"backend"`

	// Mailto is an email address sent with requests for polite-pool access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// MinInterval is the minimum spacing between metadata calls, enforced
	// across the whole run to protect the remote service (default 1s).
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CacheDOIs enables a same-run cache keyed by identifier, so duplicate
	// DOIs across entries are looked up once. Off by default; classifications
	// are identical either way.
	CacheDOIs bool `json:"cache_dois" yaml:"cache_dois"`

	// TitleFallback enables looking up entries without a DOI by their raw
	// text as a title query. Off by default: entries without an identifier
	// are normally classified without any network call.
	TitleFallback bool `json:"title_fallback" yaml:"title_fallback"`
}

// CheckConfig holds settings for the verification run.
type CheckConfig struct {
	// Tolerance is the maximum Levenshtein distance allowed for a fuzzy
	// title match (0-20). Zero means exact substring match only.
	Tolerance int `json:"tolerance" yaml:"tolerance"`
}

// ReportConfig holds settings for the run-history store.
type ReportConfig struct {
	// ReportsDir is the directory holding the run-history database.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}

// Config groups all stage configurations.
type Config struct {
	Lookup LookupConfig `json:"lookup" yaml:"lookup"`
	Check  CheckConfig  `json:"check" yaml:"check"`
	Report ReportConfig `json:"report" yaml:"report"`
}
