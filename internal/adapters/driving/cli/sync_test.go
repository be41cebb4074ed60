package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// mockSyncCoordinator implements driving.SyncCoordinator for testing.
type mockSyncCoordinator struct {
	report    *domain.SyncReport
	documents []domain.Document
	err       error
	gotSince  string
}

func (m *mockSyncCoordinator) EnabledTypes() []domain.EntityType {
	return []domain.EntityType{domain.EntityIncidents, domain.EntityAlerts}
}

func (m *mockSyncCoordinator) SyncAll(
	_ context.Context, updatedAfter string,
) (*domain.SyncReport, []domain.Document, error) {
	m.gotSince = updatedAfter
	return m.report, m.documents, m.err
}

// mockSearchIndex implements driven.SearchIndex for testing.
type mockSearchIndex struct {
	ensured  bool
	indexed  []domain.Document
	indexErr error
}

func (m *mockSearchIndex) EnsureDatasource(_ context.Context, _ driven.DatasourceDefinition) error {
	m.ensured = true
	return nil
}

func (m *mockSearchIndex) IndexDocuments(_ context.Context, _ string, docs []domain.Document) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.indexed = docs
	return nil
}

// mockRunStore implements driven.RunStore for testing.
type mockRunStore struct {
	saved []domain.SyncRun
}

func (m *mockRunStore) SaveRun(_ context.Context, run domain.SyncRun) error {
	m.saved = append(m.saved, run)
	return nil
}

func (m *mockRunStore) LastSubmittedRun(_ context.Context) (*domain.SyncRun, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Submitted {
			return &m.saved[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.SyncRun, error) {
	if len(m.saved) > limit {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

func successReport() *domain.SyncReport {
	return &domain.SyncReport{
		Results: map[domain.EntityType]domain.SyncResult{
			domain.EntityIncidents: {Status: domain.SyncSuccess, Documents: 2},
			domain.EntityAlerts:    {Status: domain.SyncSkipped, Reason: domain.SkipReasonDisabled},
			domain.EntitySchedules: {Status: domain.SyncError, Error: "boom"},
		},
		TotalDocuments:    2,
		DuplicatesRemoved: 1,
	}
}

// setupSyncTest swaps the wired services for mocks and returns a
// cleanup restoring the originals.
func setupSyncTest(coordinator *mockSyncCoordinator, index *mockSearchIndex) (*mockRunStore, func()) {
	oldSync, oldIndex, oldRuns := syncService, searchIndex, runStore
	oldName := datasourceName

	runs := &mockRunStore{}
	syncService = coordinator
	searchIndex = index
	runStore = runs
	datasourceName = "rootly-test"

	return runs, func() {
		syncService, searchIndex, runStore = oldSync, oldIndex, oldRuns
		datasourceName = oldName
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync [since]", syncCmd.Use)
}

func TestSyncCmd_InvalidSinceFailsBeforeAnyNetwork(t *testing.T) {
	coordinator := &mockSyncCoordinator{report: successReport()}
	index := &mockSearchIndex{}
	_, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()

	_, err := executeCommand(t, "sync", "not-a-date")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)
	assert.False(t, index.ensured)
	assert.Empty(t, coordinator.gotSince)
}

func TestSyncCmd_FullRun(t *testing.T) {
	coordinator := &mockSyncCoordinator{
		report: successReport(),
		documents: []domain.Document{
			{ID: "inc-1", Title: "[INC-1] Outage"},
			{ID: "al-1", Title: "[ALERT] CPU"},
		},
	}
	index := &mockSearchIndex{}
	runs, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()

	out, err := executeCommand(t, "sync", "2026-03-01T00:00:00Z")

	require.NoError(t, err)
	assert.True(t, index.ensured)
	assert.Equal(t, "2026-03-01T00:00:00Z", coordinator.gotSince)
	assert.Len(t, index.indexed, 2)

	assert.Contains(t, out, "incidents: ok (2 documents)")
	assert.Contains(t, out, "alerts: skipped (disabled)")
	assert.Contains(t, out, "schedules: failed - boom")
	assert.Contains(t, out, "Total documents: 2 (1 duplicates removed)")
	assert.Contains(t, out, `Indexed 2 documents into "rootly-test".`)

	require.Len(t, runs.saved, 1)
	assert.True(t, runs.saved[0].Submitted)
	assert.Equal(t, "2026-03-01T00:00:00Z", runs.saved[0].Since)
}

func TestSyncCmd_NoDocumentsExitsCleanly(t *testing.T) {
	coordinator := &mockSyncCoordinator{
		report: &domain.SyncReport{Results: map[domain.EntityType]domain.SyncResult{}},
	}
	index := &mockSearchIndex{}
	runs, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()

	out, err := executeCommand(t, "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents were created from any data type.")
	assert.Empty(t, index.indexed)

	require.Len(t, runs.saved, 1)
	assert.False(t, runs.saved[0].Submitted)
}

func TestSyncCmd_IndexingFailureRecordsUnsubmittedRun(t *testing.T) {
	coordinator := &mockSyncCoordinator{
		report:    successReport(),
		documents: []domain.Document{{ID: "inc-1"}},
	}
	index := &mockSearchIndex{indexErr: errors.New("rejected")}
	runs, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()

	_, err := executeCommand(t, "sync")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "indexing documents")
	require.Len(t, runs.saved, 1)
	assert.False(t, runs.saved[0].Submitted)
}

func TestSyncCmd_SinceLastUsesLastSubmittedRun(t *testing.T) {
	coordinator := &mockSyncCoordinator{
		report: &domain.SyncReport{Results: map[domain.EntityType]domain.SyncResult{}},
	}
	index := &mockSearchIndex{}
	runs, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()
	defer func() { sinceLast = false }()

	runs.saved = []domain.SyncRun{{
		ID:        "run-1",
		StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Submitted: true,
	}}

	_, err := executeCommand(t, "sync", "--since-last")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T10:00:00Z", coordinator.gotSince)
}

func TestSyncCmd_SinceLastWithoutHistoryFetchesEverything(t *testing.T) {
	coordinator := &mockSyncCoordinator{
		report: &domain.SyncReport{Results: map[domain.EntityType]domain.SyncResult{}},
	}
	index := &mockSearchIndex{}
	_, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()
	defer func() { sinceLast = false }()

	_, err := executeCommand(t, "sync", "--since-last")

	require.NoError(t, err)
	assert.Empty(t, coordinator.gotSince)
}

func TestSyncCmd_CoordinatorFailure(t *testing.T) {
	coordinator := &mockSyncCoordinator{err: errors.New("no pipelines")}
	index := &mockSearchIndex{}
	_, cleanup := setupSyncTest(coordinator, index)
	defer cleanup()

	_, err := executeCommand(t, "sync")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync failed")
}
