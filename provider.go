package marketdata

import (
	"context"
	"errors"
)

// ErrNotFound reports a valid query that matches no region. An unknown
// region is an expected outcome, not a failure: callers must not log it as
// an error.
var ErrNotFound = errors.New("no matching region")

// Provider serves merged region statistics for user queries. Every loading
// strategy (bulk, on-demand, sample) satisfies this one contract.
type Provider interface {
	// Stats resolves a free-text query (zip code, "City, ST", slug) to the
	// merged statistics of one region. It returns ErrNotFound when the query
	// matches nothing.
	Stats(ctx context.Context, query string) (*RegionStats, error)
}

// LoadProgress is the user-visible state of a bulk load: a monotonically
// increasing 0-100 fraction and a short message naming the current stage.
// After a fatal load failure both reset, so a UI never shows a frozen bar.
type LoadProgress struct {
	Percent float64
	Message string
}

// BulkLoader is the optional capability of providers that pre-load the whole
// dataset. Collaborators check for it with a type assertion instead of
// relying on a concrete provider type.
type BulkLoader interface {
	Provider

	// AwaitReady blocks until the one-shot bulk load completes, returning its
	// outcome. It is safe to call from any number of concurrent callers: all
	// of them observe the same single load.
	AwaitReady(ctx context.Context) error

	// All returns every distinct region exactly once.
	All(ctx context.Context) ([]*RegionStats, error)

	// Progress reports the current load progress.
	Progress() LoadProgress
}
