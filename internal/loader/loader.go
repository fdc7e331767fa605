package loader

import (
	"context"
	"fmt"

	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// RecordReader reads a dataset file into records.
type RecordReader interface {
	Read(path string) ([]cosmosload.Record, error)
}

// Loader implements cosmosload.DatasetLoader.
type Loader struct {
	reader RecordReader
	logger cosmosload.Logger
	verb   string
}

// Option configures a Loader.
type Option func(*Loader)

// WithSuccessVerb changes the success line, e.g. "Would upsert" for dry runs.
func WithSuccessVerb(verb string) Option {
	return func(l *Loader) { l.verb = verb }
}

// New creates a Loader. Panics if reader or logger is nil.
func New(reader RecordReader, logger cosmosload.Logger, opts ...Option) *Loader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	l := &Loader{reader: reader, logger: logger, verb: "Successfully inserted"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path and upserts every record into target.
// The returned error is non-nil only for fatal conditions: the dataset could
// not be read or parsed (no upsert has been issued), or ctx was cancelled
// between records. The partial result is returned alongside a cancellation.
func (l *Loader) Load(ctx context.Context, target cosmosload.Upserter, path string) (cosmosload.DatasetResult, error) {
	result := cosmosload.DatasetResult{File: path}

	records, err := l.reader.Read(path)
	if err != nil {
		return result, err
	}
	l.logger.Verbose("Read %d record(s) from %s", len(records), path)

	result.Items = make([]cosmosload.ItemResult, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("load of %s interrupted after %d of %d record(s): %w", path, len(result.Items), len(records), err)
		}
		result.Items = append(result.Items, l.upsert(ctx, target, record))
	}

	return result, nil
}

func (l *Loader) upsert(ctx context.Context, target cosmosload.Upserter, record cosmosload.Record) cosmosload.ItemResult {
	item := cosmosload.ItemResult{Index: record.Index, Label: record.Label()}

	res, err := target.Upsert(ctx, record)
	if err != nil {
		item.Err = err
		l.logger.Error("Error inserting item %s: %v", item.Label, err)
		return item
	}

	item.RequestCharge = res.RequestCharge
	item.ActivityID = res.ActivityID
	l.logger.Info("%s item: %s", l.verb, item.Label)
	if res.ActivityID != "" {
		l.logger.Verbose("  %.2f RU, activity %s", res.RequestCharge, res.ActivityID)
	}
	return item
}
