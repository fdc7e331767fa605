package cosmos

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
)

type upsertCall struct {
	pk   azcosmos.PartitionKey
	body string
}

type fakeContainer struct {
	paths     []string
	readErr   error
	reads     int
	upsertErr error
	charge    float32
	calls     []upsertCall
}

func (f *fakeContainer) Read(_ context.Context, _ *azcosmos.ReadContainerOptions) (azcosmos.ContainerResponse, error) {
	f.reads++
	if f.readErr != nil {
		return azcosmos.ContainerResponse{}, f.readErr
	}
	return azcosmos.ContainerResponse{
		ContainerProperties: &azcosmos.ContainerProperties{
			PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{Paths: f.paths},
		},
	}, nil
}

func (f *fakeContainer) UpsertItem(_ context.Context, pk azcosmos.PartitionKey, item []byte, _ *azcosmos.ItemOptions) (azcosmos.ItemResponse, error) {
	f.calls = append(f.calls, upsertCall{pk: pk, body: string(item)})
	if f.upsertErr != nil {
		return azcosmos.ItemResponse{}, f.upsertErr
	}
	return azcosmos.ItemResponse{
		Response: azcosmos.Response{RequestCharge: f.charge, ActivityID: fmt.Sprintf("act-%d", len(f.calls))},
	}, nil
}

type captureLogger struct {
	info   []string
	errors []string
}

func (l *captureLogger) Verbose(_ string, _ ...interface{}) {}

func (l *captureLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
