package driven

import (
	"context"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

// ObjectDefinition declares one object type within a datasource.
type ObjectDefinition struct {
	// Name is the object type tag carried by documents.
	Name string

	// DisplayLabel is the human-readable label.
	DisplayLabel string

	// DocCategory is the index's document category (e.g. "TICKETS").
	DocCategory string

	// Summarizable allows the index to generate summaries.
	Summarizable bool
}

// DatasourceDefinition declares a custom datasource and its object
// types. Declaring is an idempotent upsert, done once per run before any
// document submission.
type DatasourceDefinition struct {
	Name              string
	DisplayName       string
	Category          string
	URLRegex          string
	ObjectDefinitions []ObjectDefinition
}

// SearchIndex is the indexing API the sync submits documents to.
type SearchIndex interface {
	// EnsureDatasource creates or updates the datasource declaration.
	EnsureDatasource(ctx context.Context, def DatasourceDefinition) error

	// IndexDocuments bulk-upserts documents into the named datasource.
	// Documents carry their own ids, so re-submission is idempotent.
	IndexDocuments(ctx context.Context, datasource string, docs []domain.Document) error
}
