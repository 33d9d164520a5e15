// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup resolves reference identifiers and titles against scholarly
// metadata services. Each service (CrossRef, OpenAlex) implements the
// Backend interface; decorators add call pacing and same-run caching.
package lookup

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/refcheck/internal/secrets"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Backend resolves queries against one metadata service. Both methods
// return (nil, nil) when the service has no record for the query; errors are
// reserved for transport and protocol failures, which callers are free to
// collapse into "no record".
type Backend interface {
	Name() string

	// ByDOI resolves a bare DOI ("10.1000/xyz123") to its record.
	ByDOI(ctx context.Context, doi string) (*types.MetadataRecord, error)

	// ByTitle searches for a work by free-text title and returns the best
	// single match.
	ByTitle(ctx context.Context, title string) (*types.MetadataRecord, error)
}

// New builds the configured backend wrapped with pacing and, when enabled,
// a same-run DOI cache.
func New(cfg types.LookupConfig, creds map[string]string) (Backend, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	var b Backend
	switch cfg.Backend {
	case types.BackendCrossRef, "":
		b = &CrossRef{
			Client:     client,
			UserAgent:  cfg.UserAgent,
			Mailto:     cfg.Mailto,
			PlusToken:  creds[secrets.KeyCrossRefPlusToken],
			MaxRetries: cfg.MaxRetries,
		}
	case types.BackendOpenAlex:
		mailto := cfg.Mailto
		if mailto == "" {
			mailto = creds[secrets.KeyOpenAlexEmail]
		}
		b = &OpenAlex{
			Client:    client,
			UserAgent: cfg.UserAgent,
			Mailto:    mailto,
		}
	default:
		return nil, fmt.Errorf("unknown lookup backend %q", cfg.Backend)
	}

	b = NewPaced(b, cfg.MinInterval)
	if cfg.CacheDOIs {
		b = NewCached(b)
	}
	return b, nil
}

// Paced decorates a Backend with a minimum interval between calls,
// enforced across the whole run as an aggregate spacing rather than a
// per-call sleep.
type Paced struct {
	backend Backend
	limiter *rate.Limiter
}

// NewPaced wraps b so that consecutive calls are at least minInterval
// apart. A non-positive interval disables pacing.
func NewPaced(b Backend, minInterval time.Duration) *Paced {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Paced{backend: b, limiter: rate.NewLimiter(limit, 1)}
}

func (p *Paced) Name() string { return p.backend.Name() }

func (p *Paced) ByDOI(ctx context.Context, doi string) (*types.MetadataRecord, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.backend.ByDOI(ctx, doi)
}

func (p *Paced) ByTitle(ctx context.Context, title string) (*types.MetadataRecord, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.backend.ByTitle(ctx, title)
}

// Cached decorates a Backend with a same-run cache keyed by DOI, so
// duplicate identifiers across entries hit the service once. Only
// successful lookups are cached, including "no record" results; errors are
// retried on the next occurrence. Title searches are never cached.
type Cached struct {
	backend Backend
	records map[string]*types.MetadataRecord
}

// NewCached wraps b with an empty cache scoped to the wrapper's lifetime.
func NewCached(b Backend) *Cached {
	return &Cached{backend: b, records: make(map[string]*types.MetadataRecord)}
}

func (c *Cached) Name() string { return c.backend.Name() }

func (c *Cached) ByDOI(ctx context.Context, doi string) (*types.MetadataRecord, error) {
	if rec, ok := c.records[doi]; ok {
		return rec, nil
	}
	rec, err := c.backend.ByDOI(ctx, doi)
	if err != nil {
		return nil, err
	}
	c.records[doi] = rec
	return rec, nil
}

func (c *Cached) ByTitle(ctx context.Context, title string) (*types.MetadataRecord, error) {
	return c.backend.ByTitle(ctx, title)
}
