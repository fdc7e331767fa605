package services

import (
	"context"

	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// dryRunOpener hands out upserters that accept every record without
// contacting the service.
type dryRunOpener struct{}

func (dryRunOpener) OpenContainer(_ context.Context, _ cosmosload.DatasetSpec) (cosmosload.Upserter, error) {
	return noopUpserter{}, nil
}

type noopUpserter struct{}

func (noopUpserter) Upsert(_ context.Context, _ cosmosload.Record) (cosmosload.UpsertResult, error) {
	return cosmosload.UpsertResult{}, nil
}
