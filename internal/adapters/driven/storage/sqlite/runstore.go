package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a completed run. A missing run id is generated.
func (s *runStore) SaveRun(ctx context.Context, run domain.SyncRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, since, started_at, finished_at, report, submitted)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			since = excluded.since,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			report = excluded.report,
			submitted = excluded.submitted
	`, run.ID, run.Since, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		string(reportJSON), run.Submitted)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// LastSubmittedRun returns the most recent run whose documents were
// accepted by the index.
func (s *runStore) LastSubmittedRun(ctx context.Context) (*domain.SyncRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, since, started_at, finished_at, report, submitted
		FROM sync_runs
		WHERE submitted = 1
		ORDER BY started_at DESC
		LIMIT 1
	`)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading last submitted run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, since, started_at, finished_at, report, submitted
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.SyncRun, error) {
	var (
		run        domain.SyncRun
		reportJSON string
		started    time.Time
		finished   time.Time
	)
	if err := row.Scan(&run.ID, &run.Since, &started, &finished,
		&reportJSON, &run.Submitted); err != nil {
		return nil, err
	}
	run.StartedAt = started.UTC()
	run.FinishedAt = finished.UTC()

	if err := json.Unmarshal([]byte(reportJSON), &run.Report); err != nil {
		return nil, fmt.Errorf("unmarshalling report: %w", err)
	}
	return &run, nil
}
