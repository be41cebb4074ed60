package driven

import (
	"context"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

// FetchOptions narrow a fetch to recently modified records and cap its
// size.
type FetchOptions struct {
	// UpdatedAfter is an ISO-8601 timestamp filter. Empty means no
	// filter; it must then be omitted from requests entirely.
	UpdatedAfter string

	// MaxItems caps the total records returned. Zero means no cap.
	MaxItems int

	// ItemsPerPage is the page size requested from the source.
	ItemsPerPage int
}

// RecordFetcher fetches and enriches the raw records of one entity type.
//
// Fetching is resilient by contract: a page-level failure ends
// pagination and returns what was accumulated, and a failed enrichment
// lookup degrades to an empty bundle. Neither is surfaced as an error.
type RecordFetcher interface {
	// EntityType identifies the entity this fetcher serves.
	EntityType() domain.EntityType

	// Fetch returns the enriched raw records for the given options.
	Fetch(ctx context.Context, opts FetchOptions) ([]domain.RawRecord, error)
}
