package cosmos

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// containerAPI is the subset of *azcosmos.ContainerClient used here.
type containerAPI interface {
	Read(ctx context.Context, o *azcosmos.ReadContainerOptions) (azcosmos.ContainerResponse, error)
	UpsertItem(ctx context.Context, partitionKey azcosmos.PartitionKey, item []byte, o *azcosmos.ItemOptions) (azcosmos.ItemResponse, error)
}

// Container is the handle to one destination container.
// It implements cosmosload.Upserter.
//
// When no partition-key paths are configured they are read from the
// container on the first upsert and cached. A failed read is that record's
// error; the next record tries again.
type Container struct {
	id    string
	api   containerAPI
	paths []string
}

func newContainer(id string, api containerAPI, paths []string) (*Container, error) {
	if err := validatePaths(paths); err != nil {
		return nil, fmt.Errorf("container %s: %w: %w", id, cosmosload.ErrInvalidConfig, err)
	}

	return &Container{
		id:    id,
		api:   api,
		paths: append([]string(nil), paths...),
	}, nil
}

func validatePaths(paths []string) error {
	for _, p := range paths {
		if _, err := splitPath(p); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the container id.
func (c *Container) ID() string { return c.id }

// PartitionKeyPaths returns the paths used to derive partition key values.
// It is empty until they have been configured or read.
func (c *Container) PartitionKeyPaths() []string { return append([]string(nil), c.paths...) }

func (c *Container) resolvePaths(ctx context.Context) ([]string, error) {
	if len(c.paths) > 0 {
		return c.paths, nil
	}

	resp, err := c.api.Read(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read container %s: %w", c.id, wrapUpsertError(err))
	}
	if resp.ContainerProperties == nil || len(resp.ContainerProperties.PartitionKeyDefinition.Paths) == 0 {
		return nil, fmt.Errorf("container %s reports no partition key paths", c.id)
	}

	paths := resp.ContainerProperties.PartitionKeyDefinition.Paths
	if err := validatePaths(paths); err != nil {
		return nil, fmt.Errorf("container %s: %w", c.id, err)
	}
	c.paths = append([]string(nil), paths...)
	return c.paths, nil
}

// Upsert writes the record body verbatim.
func (c *Container) Upsert(ctx context.Context, record cosmosload.Record) (cosmosload.UpsertResult, error) {
	paths, err := c.resolvePaths(ctx)
	if err != nil {
		return cosmosload.UpsertResult{}, err
	}

	pk, err := PartitionKeyFor(paths, record.Fields)
	if err != nil {
		return cosmosload.UpsertResult{}, err
	}

	resp, err := c.api.UpsertItem(ctx, pk, record.Raw, nil)
	if err != nil {
		return cosmosload.UpsertResult{}, wrapUpsertError(err)
	}

	return cosmosload.UpsertResult{
		RequestCharge: resp.RequestCharge,
		ActivityID:    resp.ActivityID,
	}, nil
}
