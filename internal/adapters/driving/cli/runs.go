package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent sync run history",
	RunE:  runRunsCmd,
}

var runsLimit int

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRunsCmd(cmd *cobra.Command, _ []string) error {
	if err := ensureRunStore(); err != nil {
		return err
	}

	runs, err := runStore.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No sync runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s\n", run.StartedAt.Format(time.RFC3339), runSummary(run))
	}
	return nil
}

func runSummary(run domain.SyncRun) string {
	scope := "full"
	if run.Since != "" {
		scope = "since " + run.Since
	}
	outcome := "not submitted"
	if run.Submitted {
		outcome = "submitted"
	}
	summary := fmt.Sprintf("%s, %d documents, %s", scope, run.Report.TotalDocuments, outcome)
	if run.Report.DuplicatesRemoved > 0 {
		summary += fmt.Sprintf(" (%d duplicates removed)", run.Report.DuplicatesRemoved)
	}
	return summary
}
