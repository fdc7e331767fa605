package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

var rootCmd = &cobra.Command{
	Use:   "cosmosload",
	Short: "Seed Azure Cosmos DB containers from JSON files",
	Long: `cosmosload reads the banking datasets (accounts, offers, users) from JSON
files and upserts every record into its Cosmos DB container.

A record that fails to upsert is reported and skipped; the run goes on.
A missing or malformed dataset file stops the run before anything is written
for that dataset.

Exit Codes:
  0  - Success (also when single records failed, unless --fail-on-error)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (e.g. COSMOSDB_ENDPOINT not set)
  11 - Credential or client creation failed
  13 - Records failed to load and --fail-on-error was set
  14 - Dataset file missing or not a JSON array of objects`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", cosmosload.ErrUsage, err)
	})
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
