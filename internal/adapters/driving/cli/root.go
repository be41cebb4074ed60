// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "rootsync",
	Short: "Synchronise Rootly data into a Glean search index",
	Long: `rootsync fetches incidents, alerts, on-call schedules, escalation
policies and retrospectives from the Rootly API, maps them to search
documents and submits them to a Glean custom datasource.

Configuration lives in ~/.rootsync/config.toml. Set the API tokens with
'rootsync auth rootly' and 'rootsync auth glean' before the first sync.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(
		&configDir, "config-dir", "", "Configuration directory (default ~/.rootsync)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
