package cosmosload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed (per-item failures do not count unless requested)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration (missing endpoint, bad config file)
	ExitConnectionError = 11 // Credential or client construction failed
	ExitItemsFailed     = 13 // At least one upsert failed and --fail-on-error was set
	ExitDatasetInvalid  = 14 // Dataset file missing, unreadable, or not a JSON array of objects
)

const (
	// EnvEndpoint names the environment variable holding the Cosmos DB account endpoint.
	EnvEndpoint = "COSMOSDB_ENDPOINT"

	// EnvDatabase overrides the target database name.
	EnvDatabase = "COSMOSDB_DATABASE"

	// EnvAccountKey switches to account-key authentication (local emulator).
	EnvAccountKey = "COSMOSDB_KEY"

	// DefaultDatabase is the database the banking datasets are seeded into.
	DefaultDatabase = "MultiAgentBanking"

	// DefaultDataDir is where dataset files are looked up when nothing else is configured.
	DefaultDataDir = "."

	// DefaultTimeout disables the run-wide deadline. Network timeouts are left
	// to the Azure SDK pipeline.
	DefaultTimeout = time.Duration(0)

	// UnknownItemLabel is printed for records that carry no id.
	UnknownItemLabel = "Unknown"
)

// Dataset names in load order.
const (
	DatasetAccounts = "accounts"
	DatasetOffers   = "offers"
	DatasetUsers    = "users"
)

// DefaultDatasets returns the fixed file to container mapping, in load order.
// A fresh slice is returned on every call so callers may modify it.
func DefaultDatasets() []DatasetSpec {
	return []DatasetSpec{
		{Name: DatasetAccounts, File: "AccountsData.json", Container: "AccountsData"},
		{Name: DatasetOffers, File: "OffersData.json", Container: "OffersData"},
		{Name: DatasetUsers, File: "UserData.json", Container: "Users"},
	}
}
