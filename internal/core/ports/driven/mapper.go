package driven

import (
	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

// DocumentMapper is a pure transform from one enriched raw record to one
// normalised document.
type DocumentMapper interface {
	// EntityType identifies the entity this mapper serves.
	EntityType() domain.EntityType

	// Map converts a record. It returns domain.ErrMissingAttributes
	// when the record has no usable attributes block; the caller logs
	// and skips the record without failing the type's pipeline.
	Map(record domain.RawRecord) (*domain.Document, error)
}
