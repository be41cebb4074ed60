package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync [since]",
	Short: "Synchronise enabled data types into the search index",
	Long: `Fetches all enabled data types from Rootly, maps them to search
documents and bulk-indexes them into the configured Glean datasource.

An optional ISO-8601 timestamp restricts the fetch to records modified
after that instant (e.g. 2026-01-02T15:04:05Z). Without it, all records
are fetched within the configured limits. --since-last continues from
the start of the last submitted run instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSyncCmd,
}

var sinceLast bool

func init() {
	syncCmd.Flags().BoolVar(&sinceLast, "since-last", false,
		"Fetch records modified since the last submitted run")
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	since := ""
	if len(args) > 0 {
		since = args[0]
		if _, err := domain.ParseISO8601(since); err != nil {
			return fmt.Errorf("invalid since value, use ISO-8601 (e.g. 2026-01-02T15:04:05Z): %w", err)
		}
	}

	if sinceLast && since == "" {
		last, err := lastRunSince()
		if err != nil {
			return err
		}
		since = last
	}

	ctx := context.Background()
	if err := ensureSyncServices(ctx); err != nil {
		return err
	}

	enabled := syncService.EnabledTypes()
	if len(enabled) == 0 {
		cmd.Println("No data types are enabled. Nothing to sync.")
		return nil
	}
	cmd.Printf("Synchronising data types: %s\n", joinTypes(enabled))
	if since != "" {
		cmd.Printf("Fetching records modified after %s\n", since)
	}

	if err := searchIndex.EnsureDatasource(ctx, datasourceDef); err != nil {
		return fmt.Errorf("declaring datasource %q: %w", datasourceName, err)
	}

	startedAt := time.Now().UTC()
	report, documents, err := syncService.SyncAll(ctx, since)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printReport(cmd, report)

	run := domain.SyncRun{
		Since:      since,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Report:     *report,
	}

	if len(documents) == 0 {
		cmd.Println("No documents were created from any data type.")
		saveRun(run)
		return nil
	}

	if err := searchIndex.IndexDocuments(ctx, datasourceName, documents); err != nil {
		saveRun(run)
		return fmt.Errorf("indexing documents: %w", err)
	}
	run.Submitted = true
	run.FinishedAt = time.Now().UTC()
	saveRun(run)

	cmd.Printf("Indexed %d documents into %q.\n", len(documents), datasourceName)
	return nil
}

// printReport writes the per-type outcomes and the run totals.
func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	cmd.Println("\nSync results:")
	for _, entity := range domain.AllEntityTypes() {
		result, ok := report.Results[entity]
		if !ok {
			continue
		}
		switch result.Status {
		case domain.SyncSuccess:
			cmd.Printf("  %s: ok (%d documents)\n", entity, result.Documents)
		case domain.SyncSkipped:
			cmd.Printf("  %s: skipped (%s)\n", entity, result.Reason)
		case domain.SyncError:
			cmd.Printf("  %s: failed - %s\n", entity, result.Error)
		}
	}
	cmd.Printf("Total documents: %d", report.TotalDocuments)
	if report.DuplicatesRemoved > 0 {
		cmd.Printf(" (%d duplicates removed)", report.DuplicatesRemoved)
	}
	cmd.Println()
}

// lastRunSince resolves the start of the most recent submitted run,
// empty when no run was submitted yet.
func lastRunSince() (string, error) {
	if err := ensureRunStore(); err != nil {
		return "", err
	}

	last, err := runStore.LastSubmittedRun(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("No previous submitted run, fetching everything")
			return "", nil
		}
		return "", fmt.Errorf("loading last run: %w", err)
	}
	return last.StartedAt.UTC().Format(time.RFC3339), nil
}

// saveRun records run history on a best-effort basis. History failures
// never fail the sync itself.
func saveRun(run domain.SyncRun) {
	if err := ensureRunStore(); err != nil {
		logger.Warn("Could not open run history: %v", err)
		return
	}
	if err := runStore.SaveRun(context.Background(), run); err != nil {
		logger.Warn("Could not record run history: %v", err)
	}
}

func joinTypes(types []domain.EntityType) string {
	out := ""
	for i, entity := range types {
		if i > 0 {
			out += ", "
		}
		out += string(entity)
	}
	return out
}
