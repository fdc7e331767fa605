package cosmosload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := seeder.Run(ctx, cfg)
//	if errors.Is(err, cosmosload.ErrDatasetInvalid) {
//	    // Handle a broken input file
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDatasetInvalid indicates a dataset file could not be read or parsed.
	ErrDatasetInvalid = errors.New("invalid dataset")

	// ErrConnectionFailed indicates the credential or client could not be created.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrItemsFailed indicates one or more records could not be upserted.
	// Only returned when the caller asked for strict item handling.
	ErrItemsFailed = errors.New("one or more items failed")

	// ErrUsage indicates the command line was malformed.
	ErrUsage = errors.New("usage error")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrDatasetInvalid):
		return ExitDatasetInvalid
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrItemsFailed):
		return ExitItemsFailed
	}

	// cobra reports argument and flag problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "required flag", "invalid argument"} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
