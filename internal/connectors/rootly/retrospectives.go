package rootly

import (
	"context"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// Ensure RetrospectiveFetcher implements the interface.
var _ driven.RecordFetcher = (*RetrospectiveFetcher)(nil)

// RetrospectiveFetcher fetches retrospectives. The source lists them
// under the legacy post_mortems endpoint; no enrichment applies.
type RetrospectiveFetcher struct {
	fetcher
}

// NewRetrospectiveFetcher creates a retrospective fetcher.
func NewRetrospectiveFetcher(client *Client) *RetrospectiveFetcher {
	return &RetrospectiveFetcher{
		fetcher: fetcher{client: client, entity: domain.EntityRetrospectives},
	}
}

// Fetch returns retrospectives within the configured limits.
func (f *RetrospectiveFetcher) Fetch(
	ctx context.Context, opts driven.FetchOptions,
) ([]domain.RawRecord, error) {
	return f.fetchPaginated(ctx, domain.EntityRetrospectives.Endpoint(), opts, nil), nil
}
