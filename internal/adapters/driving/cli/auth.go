package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store API tokens",
	Long: `Store the API tokens used to talk to Rootly and Glean.

Tokens are written to the config file with restricted permissions.

Examples:
  rootsync auth rootly
  rootsync auth glean`,
}

var authRootlyCmd = &cobra.Command{
	Use:   "rootly",
	Short: "Store the Rootly API token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return storeToken(cmd, "Rootly", "rootly.api_token")
	},
}

var authGleanCmd = &cobra.Command{
	Use:   "glean",
	Short: "Store the Glean indexing API token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return storeToken(cmd, "Glean", "glean.api_token")
	},
}

func init() {
	authCmd.AddCommand(authRootlyCmd)
	authCmd.AddCommand(authGleanCmd)
	rootCmd.AddCommand(authCmd)
}

func storeToken(cmd *cobra.Command, label, key string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	cmd.Printf("%s API token: ", label)
	token := readPassword()
	cmd.Println()

	if token == "" {
		return fmt.Errorf("no token provided")
	}
	if err := configStore.Set(key, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	cmd.Printf("%s token stored.\n", label)
	return nil
}

func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
