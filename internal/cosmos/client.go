package cosmos

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// applicationID is sent in the User-Agent of every request.
const applicationID = "cosmosload"

// Opener creates container handles against one database.
// It implements cosmosload.ContainerOpener.
type Opener struct {
	database     string
	logger       cosmosload.Logger
	newContainer func(id string) (containerAPI, error)
}

// NewOpener authenticates and creates the Cosmos DB client for cfg.
// No request is sent until a container is opened.
func NewOpener(cfg *cosmosload.LoadConfig, logger cosmosload.Logger) (*Opener, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := client.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client for %s: %w: %w", cfg.Database, cosmosload.ErrConnectionFailed, err)
	}

	return newOpener(cfg.Database, logger, func(id string) (containerAPI, error) {
		c, err := db.NewContainer(id)
		if err != nil {
			return nil, err
		}
		return c, nil
	}), nil
}

func newOpener(database string, logger cosmosload.Logger, factory func(id string) (containerAPI, error)) *Opener {
	return &Opener{database: database, logger: logger, newContainer: factory}
}

func newClient(cfg *cosmosload.LoadConfig, logger cosmosload.Logger) (*azcosmos.Client, error) {
	opts := &azcosmos.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Telemetry: policy.TelemetryOptions{ApplicationID: applicationID},
		},
	}

	if cfg.Auth.AccountKey != "" {
		key, err := azcosmos.NewKeyCredential(cfg.Auth.AccountKey)
		if err != nil {
			return nil, fmt.Errorf("invalid account key: %w: %w", cosmosload.ErrInvalidConfig, err)
		}
		logger.Verbose("Authenticating with account key")
		client, err := azcosmos.NewClientWithKey(cfg.Endpoint, key, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create Cosmos DB client: %w: %w", cosmosload.ErrConnectionFailed, err)
		}
		return client, nil
	}

	cred, err := NewCredential(cfg.Auth)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Authenticating with %s", cred)

	client, err := azcosmos.NewClient(cfg.Endpoint, cred, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cosmos DB client: %w: %w", cosmosload.ErrConnectionFailed, err)
	}
	return client, nil
}

// OpenContainer returns the handle for ds.Container.
// No request is sent; the container is first contacted by Upsert.
func (o *Opener) OpenContainer(_ context.Context, ds cosmosload.DatasetSpec) (cosmosload.Upserter, error) {
	api, err := o.newContainer(ds.Container)
	if err != nil {
		return nil, fmt.Errorf("failed to create container client for %s: %w: %w", ds.Container, cosmosload.ErrConnectionFailed, err)
	}

	c, err := newContainer(ds.Container, api, ds.PartitionKeyPaths)
	if err != nil {
		return nil, err
	}
	if paths := c.PartitionKeyPaths(); len(paths) > 0 {
		o.logger.Verbose("Container %s/%s partition key %v", o.database, c.ID(), paths)
	} else {
		o.logger.Verbose("Container %s/%s partition key read on first upsert", o.database, c.ID())
	}
	return c, nil
}
