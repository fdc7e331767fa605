package cosmosload

import "context"

// Upserter is a handle to one destination container.
// Upsert inserts the record or overwrites the item with the same id and
// partition key.
type Upserter interface {
	Upsert(ctx context.Context, record Record) (UpsertResult, error)
}

// ContainerOpener hands out one Upserter per dataset.
type ContainerOpener interface {
	OpenContainer(ctx context.Context, ds DatasetSpec) (Upserter, error)
}

// OpenerFactory builds a ContainerOpener for the given configuration.
// It is where credentials are resolved and the client is created.
type OpenerFactory func(cfg *LoadConfig) (ContainerOpener, error)

// DatasetLoader upserts every record of one dataset file.
type DatasetLoader interface {
	Load(ctx context.Context, target Upserter, path string) (DatasetResult, error)
}

// Seeder runs a complete load.
type Seeder interface {
	Run(ctx context.Context, cfg LoadConfig) (Report, error)
}
