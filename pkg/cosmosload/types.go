package cosmosload

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one JSON object read from a dataset file.
// Raw holds the object exactly as it appeared in the file and is the payload
// sent to the destination.
type Record struct {
	// Index is the zero-based position of the record in its dataset.
	Index int

	// ID is the string value of the "id" field; empty when absent or not a string.
	ID string

	// Raw is the undecoded JSON object.
	Raw json.RawMessage

	// Fields is the decoded object, numbers kept as json.Number.
	Fields map[string]any

	label   string
	labeled bool
}

// NewRecord builds a Record from a raw JSON object.
func NewRecord(index int, raw json.RawMessage, fields map[string]any) Record {
	r := Record{Index: index, Raw: raw, Fields: fields, label: UnknownItemLabel, labeled: true}
	switch id := fields["id"].(type) {
	case string:
		// An empty id is printed as is; the placeholder is only for absent ids.
		r.ID = id
		r.label = id
	case nil:
	default:
		if b, err := json.Marshal(id); err == nil {
			r.label = string(b)
		}
	}
	return r
}

// Label returns the identifier used in log lines.
func (r Record) Label() string {
	if !r.labeled {
		return UnknownItemLabel
	}
	return r.label
}

// UpsertResult carries diagnostics reported by the destination for one upsert.
type UpsertResult struct {
	RequestCharge float32
	ActivityID    string
}

// ItemResult is the outcome of one record's upsert.
type ItemResult struct {
	Index         int
	Label         string
	Err           error
	RequestCharge float32
	ActivityID    string
}

// OK reports whether the upsert succeeded.
func (r ItemResult) OK() bool { return r.Err == nil }

// DatasetResult collects the per-item outcomes of one dataset pass, in file order.
type DatasetResult struct {
	Name      string
	File      string
	Container string
	Items     []ItemResult
}

// Succeeded returns the number of records upserted successfully.
func (d DatasetResult) Succeeded() int {
	n := 0
	for _, item := range d.Items {
		if item.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of records whose upsert failed.
func (d DatasetResult) Failed() int {
	return len(d.Items) - d.Succeeded()
}

// RequestCharge sums the request units consumed by the dataset.
func (d DatasetResult) RequestCharge() float64 {
	var total float64
	for _, item := range d.Items {
		total += float64(item.RequestCharge)
	}
	return total
}

// Report is the result of a whole load run.
type Report struct {
	RunID    uuid.UUID
	DryRun   bool
	Datasets []DatasetResult
}

// Failed returns the number of failed records across all datasets.
func (r Report) Failed() int {
	n := 0
	for _, d := range r.Datasets {
		n += d.Failed()
	}
	return n
}

// DatasetSpec binds one dataset file to its destination container.
type DatasetSpec struct {
	// Name is the logical dataset name used in log lines ("accounts").
	Name string

	// File is the dataset file name, resolved against LoadConfig.DataDir
	// unless absolute.
	File string

	// Container is the destination container id.
	Container string

	// PartitionKeyPaths optionally overrides the container's partition key
	// definition, e.g. ["/tenantId", "/accountId"]. When empty the paths are
	// read from the container.
	PartitionKeyPaths []string
}

// AuthConfig selects how the client authenticates.
type AuthConfig struct {
	// AccountKey enables key authentication (emulator). Takes precedence.
	AccountKey string

	// Service principal parameters. All three must be set to be used;
	// otherwise the DefaultAzureCredential chain applies.
	TenantID     string
	ClientID     string
	ClientSecret string
}

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// Endpoint is the Cosmos DB account URL.
	Endpoint string

	// Database is the target database id.
	Database string

	// DataDir is the directory dataset files are read from.
	DataDir string

	// Datasets lists the datasets in load order.
	Datasets []DatasetSpec

	Auth AuthConfig

	// Timeout bounds the whole run; zero disables it.
	Timeout time.Duration

	// DryRun parses every dataset without contacting the service.
	DryRun bool

	// FailOnItemError turns per-item failures into a non-nil error at the end of the run.
	FailOnItemError bool

	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.Endpoint == "" && !c.DryRun {
		errs = append(errs, fmt.Errorf("%s environment variable is not set: %w", EnvEndpoint, ErrInvalidConfig))
	}

	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database is required: %w", ErrInvalidConfig))
	}

	if len(c.Datasets) == 0 {
		errs = append(errs, fmt.Errorf("at least one dataset is required: %w", ErrInvalidConfig))
	}

	for i, ds := range c.Datasets {
		if ds.File == "" || ds.Container == "" {
			errs = append(errs, fmt.Errorf("dataset %d (%s) needs both file and container: %w", i, ds.Name, ErrInvalidConfig))
		}
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
