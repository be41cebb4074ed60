package driving

import (
	"context"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

// SyncCoordinator orchestrates the per-entity-type sync pipelines.
type SyncCoordinator interface {
	// EnabledTypes lists the entity types configuration enables, for
	// reporting before a run starts.
	EnabledTypes() []domain.EntityType

	// SyncAll runs fetch → enrich → map for every configured entity
	// type, isolating failures to the type they occur in, then
	// deduplicates the combined output by document id.
	//
	// updatedAfter is an optional ISO-8601 modification-time filter;
	// empty fetches everything within configured limits.
	SyncAll(ctx context.Context, updatedAfter string) (*domain.SyncReport, []domain.Document, error)
}
