package driven

import (
	"context"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

// RunStore persists sync run history.
type RunStore interface {
	// SaveRun stores a completed run.
	SaveRun(ctx context.Context, run domain.SyncRun) error

	// LastSubmittedRun returns the most recent run whose documents
	// were accepted by the index, or domain.ErrNotFound.
	LastSubmittedRun(ctx context.Context) (*domain.SyncRun, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)
}
