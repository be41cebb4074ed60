package domain

import "time"

// SyncStatus is the outcome of one entity type's pipeline.
type SyncStatus string

// Pipeline outcomes.
const (
	SyncSuccess SyncStatus = "success"
	SyncSkipped SyncStatus = "skipped"
	SyncError   SyncStatus = "error"
)

// SkipReasonDisabled marks a type skipped because configuration
// disables it.
const SkipReasonDisabled = "disabled"

// SyncResult is the per-entity-type outcome of a run.
type SyncResult struct {
	// Status is success, skipped or error.
	Status SyncStatus

	// Documents is the number of documents produced (success only).
	Documents int

	// Reason explains a skip.
	Reason string

	// Error describes a failure.
	Error string
}

// SyncReport aggregates a whole run: one result per entity type plus
// dedup totals.
type SyncReport struct {
	// Results holds the per-type outcomes.
	Results map[EntityType]SyncResult

	// TotalDocuments is the unique document count after dedup.
	TotalDocuments int

	// DuplicatesRemoved counts documents dropped for sharing an id
	// with an earlier document in the same run.
	DuplicatesRemoved int
}

// SyncRun is one persisted run of the sync job.
type SyncRun struct {
	// ID is a generated unique run id.
	ID string

	// Since is the ISO-8601 modification-time filter the run used,
	// empty for a full fetch.
	Since string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Report is the run's aggregated outcome.
	Report SyncReport

	// Submitted is true once the documents were accepted by the index.
	Submitted bool
}
