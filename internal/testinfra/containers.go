package testinfra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	CosmosEmulatorImage = "mcr.microsoft.com/cosmosdb/linux/azure-cosmos-emulator:vnext-preview"

	// CosmosEmulatorKey is the fixed, publicly documented emulator account key.
	CosmosEmulatorKey = "C2y6yDjf5/R+ob0N8A7Cgv30VRDJIWEHLM+4QDU5DE2nQ9nDuVTqobD4b8mGGyPMbIZnqyMsEcaGQy67XIw/Jw=="

	emulatorPort = "8081/tcp"
)

type CosmosEmulator struct {
	testcontainers.Container
	Endpoint string
}

// StartCosmosEmulator runs the Linux emulator over plain HTTP so the SDK
// needs no certificate setup.
func StartCosmosEmulator(ctx context.Context) (*CosmosEmulator, error) {
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        CosmosEmulatorImage,
			ExposedPorts: []string{emulatorPort},
			Cmd:          []string{"--protocol", "http"},
			WaitingFor: wait.ForListeningPort(emulatorPort).
				WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start cosmos emulator: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get emulator host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, emulatorPort)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get emulator port: %w", err)
	}

	return &CosmosEmulator{
		Container: ctr,
		Endpoint:  fmt.Sprintf("http://%s:%s/", host, port.Port()),
	}, nil
}

// Client returns a key-authenticated client for the emulator.
func (e *CosmosEmulator) Client() (*azcosmos.Client, error) {
	cred, err := azcosmos.NewKeyCredential(CosmosEmulatorKey)
	if err != nil {
		return nil, err
	}
	return azcosmos.NewClientWithKey(e.Endpoint, cred, nil)
}

// ContainerSchema describes one container to create.
type ContainerSchema struct {
	ID    string
	Paths []string
}

// BankingSchema mirrors the production partitioning: accounts use a
// hierarchical key, offers and users a single tenant key.
var BankingSchema = []ContainerSchema{
	{ID: "AccountsData", Paths: []string{"/tenantId", "/accountId"}},
	{ID: "OffersData", Paths: []string{"/tenantId"}},
	{ID: "Users", Paths: []string{"/tenantId"}},
}

// CreateSchema creates database and containers. The emulator may refuse
// requests for a while after its port opens, so creation is retried until
// ctx expires.
func (e *CosmosEmulator) CreateSchema(ctx context.Context, database string, containers []ContainerSchema) error {
	client, err := e.Client()
	if err != nil {
		return err
	}

	for {
		_, err = client.CreateDatabase(ctx, azcosmos.DatabaseProperties{ID: database}, nil)
		if err == nil || isConflict(err) {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("create database %s: %w", database, err)
		case <-time.After(2 * time.Second):
		}
	}

	db, err := client.NewDatabase(database)
	if err != nil {
		return err
	}
	for _, c := range containers {
		pk := azcosmos.PartitionKeyDefinition{Paths: c.Paths}
		if len(c.Paths) > 1 {
			pk.Kind = azcosmos.PartitionKeyKindMultiHash
			pk.Version = 2
		}
		if _, err := db.CreateContainer(ctx, azcosmos.ContainerProperties{ID: c.ID, PartitionKeyDefinition: pk}, nil); err != nil && !isConflict(err) {
			return fmt.Errorf("create container %s: %w", c.ID, err)
		}
	}
	return nil
}

// isConflict reports whether err means the resource already exists.
func isConflict(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusConflict
}
