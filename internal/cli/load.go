package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/cosmosload/internal/config"
	"github.com/vvka-141/cosmosload/internal/cosmos"
	"github.com/vvka-141/cosmosload/internal/dataset"
	"github.com/vvka-141/cosmosload/internal/files/filesystem"
	"github.com/vvka-141/cosmosload/internal/loader"
	"github.com/vvka-141/cosmosload/internal/logging"
	"github.com/vvka-141/cosmosload/internal/services"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Upsert the banking datasets into Cosmos DB",
	Long: `Load reads AccountsData.json, OffersData.json and UserData.json and upserts
every record into the AccountsData, OffersData and Users containers of the
MultiAgentBanking database.

Configuration precedence: flag > environment > cosmosload.yaml > default.
A .env file in the working directory is loaded first; it never overrides
variables that are already set.

Authentication:
  COSMOSDB_KEY set                          Account key (local emulator)
  AZURE_TENANT_ID, AZURE_CLIENT_ID and
  AZURE_CLIENT_SECRET all set               Service principal
  otherwise                                 DefaultAzureCredential chain
                                            (Managed Identity, Azure CLI, ...)

Examples:
  # Load from the current directory
  COSMOSDB_ENDPOINT=https://acct.documents.azure.com:443/ cosmosload load

  # Load from another directory with RU diagnostics
  cosmosload load --data-dir ./infra/data -v

  # Check the files without writing anything
  cosmosload load --data-dir ./infra/data --dry-run

  # Fail the CI job when any record is rejected
  cosmosload load --fail-on-error`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

type loadFlagValues struct {
	endpoint, database           string
	dataDir, configDir           string
	azureTenantID, azureClientID string
	timeout                      time.Duration
	dryRun, failOnError          bool
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.endpoint, "endpoint", "",
		"Cosmos DB account endpoint\n"+
			"Precedence: --endpoint > $COSMOSDB_ENDPOINT > cosmosload.yaml")
	loadCmd.Flags().StringVarP(&loadFlags.database, "database", "d", "",
		"Target database\n"+
			"Precedence: --database > $COSMOSDB_DATABASE > cosmosload.yaml > "+cosmosload.DefaultDatabase)
	loadCmd.Flags().StringVar(&loadFlags.dataDir, "data-dir", "",
		"Directory containing the dataset files (default: cosmosload.yaml data_dir, or the current directory)")
	loadCmd.Flags().StringVar(&loadFlags.configDir, "config-dir", ".",
		"Directory searched for cosmosload.yaml")

	loadCmd.Flags().StringVar(&loadFlags.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	loadCmd.Flags().StringVar(&loadFlags.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")

	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", cosmosload.DefaultTimeout,
		"Deadline for the whole run, 0 disables it\n"+
			"Request-level timeouts and retries are handled by the Azure SDK\n"+
			"Examples: 30s, 5m, 1h30m")
	loadCmd.Flags().BoolVar(&loadFlags.dryRun, "dry-run", false,
		"Parse every dataset and list the records without contacting Cosmos DB")
	loadCmd.Flags().BoolVar(&loadFlags.failOnError, "fail-on-error", false,
		fmt.Sprintf("Exit with code %d when any record fails to upsert", cosmosload.ExitItemsFailed))
}

// buildLoadConfig resolves a LoadConfig from flags, environment and cosmosload.yaml.
func buildLoadConfig(cmd *cobra.Command, verbose bool) (cosmosload.LoadConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(loadFlags.configDir)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return cosmosload.LoadConfig{}, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, cosmosload.ErrInvalidConfig, err)
	}
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	} else if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Using %s\n", filepath.Join(loadFlags.configDir, config.ConfigFileName))
	}

	datasets, err := projectCfg.ApplyDatasets(cosmosload.DefaultDatasets())
	if err != nil {
		return cosmosload.LoadConfig{}, err
	}

	// Apply timeout from cosmosload.yaml if --timeout wasn't explicitly set
	timeout := loadFlags.timeout
	if projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
		if parseErr != nil {
			return cosmosload.LoadConfig{}, fmt.Errorf("invalid timeout in %s: %w: %w", config.ConfigFileName, cosmosload.ErrInvalidConfig, parseErr)
		}
		timeout = parsed
	}

	dataDir := firstNonEmpty(loadFlags.dataDir, projectCfg.DataDir, cosmosload.DefaultDataDir)
	if loadFlags.dataDir == "" && projectCfg.DataDir != "" && !filepath.IsAbs(dataDir) {
		// yaml data_dir is relative to the file that declares it
		dataDir = filepath.Join(loadFlags.configDir, dataDir)
	}

	cfg := cosmosload.LoadConfig{
		Endpoint: firstNonEmpty(loadFlags.endpoint, os.Getenv(cosmosload.EnvEndpoint), projectCfg.Endpoint),
		Database: firstNonEmpty(loadFlags.database, os.Getenv(cosmosload.EnvDatabase), projectCfg.Database, cosmosload.DefaultDatabase),
		DataDir:  dataDir,
		Datasets: datasets,
		Auth: cosmosload.AuthConfig{
			AccountKey:   os.Getenv(cosmosload.EnvAccountKey),
			TenantID:     firstNonEmpty(loadFlags.azureTenantID, os.Getenv("AZURE_TENANT_ID"), projectCfg.Auth.TenantID),
			ClientID:     firstNonEmpty(loadFlags.azureClientID, os.Getenv("AZURE_CLIENT_ID"), projectCfg.Auth.ClientID),
			ClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
		},
		Timeout:         timeout,
		DryRun:          loadFlags.dryRun,
		FailOnItemError: loadFlags.failOnError,
		Verbose:         verbose,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Endpoint: %s\n", cfg.Endpoint)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.Database)
		fmt.Fprintf(os.Stderr, "  Data Directory: %s\n", cfg.DataDir)
		fmt.Fprintf(os.Stderr, "  Timeout: %s\n", cfg.Timeout)
	}

	return cfg, nil
}

func runLoad(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLoadConfig(cmd, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	reader := dataset.NewReader(filesystem.NewOSFileSystem())

	seeder := services.NewSeedService(
		func(c *cosmosload.LoadConfig) (cosmosload.ContainerOpener, error) {
			opener, err := cosmos.NewOpener(c, logger)
			if err != nil {
				return nil, err
			}
			return opener, nil
		},
		loader.New(reader, logger),
		loader.New(reader, logger, loader.WithSuccessVerb("Would upsert")),
		logger,
	)

	ctx, cancel := newRunContext(cfg.Timeout)
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := seeder.Run(ctx, cfg); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	return nil
}

func newRunContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
