package cosmos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/cosmosload/internal/logging"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

func record(t *testing.T, body string) cosmosload.Record {
	t.Helper()
	var fields map[string]any
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&fields))
	return cosmosload.NewRecord(0, json.RawMessage(body), fields)
}

func TestOpener_DiscoversPartitionKeyPathsOnFirstUpsert(t *testing.T) {
	fake := &fakeContainer{paths: []string{"/tenantId", "/accountId"}, charge: 6.1}
	opener := newOpener("MultiAgentBanking", logging.NewNullLogger(), func(id string) (containerAPI, error) {
		assert.Equal(t, "AccountsData", id)
		return fake, nil
	})

	target, err := opener.OpenContainer(context.Background(), cosmosload.DatasetSpec{Name: "accounts", Container: "AccountsData"})
	require.NoError(t, err)
	assert.Equal(t, 0, fake.reads, "opening a handle sends no request")

	body := `{"id":"a1","tenantId":"t1","accountId":"acc-001","balance":100}`
	res, err := target.Upsert(context.Background(), record(t, body))
	require.NoError(t, err)
	assert.Equal(t, 1, fake.reads)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, body, fake.calls[0].body)
	assert.Equal(t, azcosmos.NewPartitionKey().AppendString("t1").AppendString("acc-001"), fake.calls[0].pk)
	assert.InDelta(t, 6.1, res.RequestCharge, 0.001)
	assert.Equal(t, "act-1", res.ActivityID)

	_, err = target.Upsert(context.Background(), record(t, `{"id":"a2","tenantId":"t1","accountId":"acc-002"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, fake.reads, "container metadata is read once per handle")
	assert.Equal(t, []string{"/tenantId", "/accountId"}, target.(*Container).PartitionKeyPaths())
}

func TestOpener_ConfiguredPathsSkipRead(t *testing.T) {
	fake := &fakeContainer{}
	opener := newOpener("db", logging.NewNullLogger(), func(string) (containerAPI, error) { return fake, nil })

	target, err := opener.OpenContainer(context.Background(), cosmosload.DatasetSpec{
		Container:         "Users",
		PartitionKeyPaths: []string{"/tenantId"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/tenantId"}, target.(*Container).PartitionKeyPaths())

	_, err = target.Upsert(context.Background(), record(t, `{"id":"u1","tenantId":"t1"}`))
	require.NoError(t, err)
	assert.Equal(t, 0, fake.reads)
}

func TestOpener_InvalidConfiguredPath(t *testing.T) {
	opener := newOpener("db", logging.NewNullLogger(), func(string) (containerAPI, error) { return &fakeContainer{}, nil })

	_, err := opener.OpenContainer(context.Background(), cosmosload.DatasetSpec{
		Container:         "Users",
		PartitionKeyPaths: []string{"tenantId"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cosmosload.ErrInvalidConfig))
}

func TestContainer_ReadFailureIsRecordError(t *testing.T) {
	fake := &fakeContainer{
		paths:   []string{"/tenantId"},
		readErr: &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "NotFound"},
	}
	c, err := newContainer("Users", fake, nil)
	require.NoError(t, err)

	_, err = c.Upsert(context.Background(), record(t, `{"id":"u1","tenantId":"t1"}`))
	require.Error(t, err)
	assert.Equal(t, "failed to read container Users: status 404 Not Found (NotFound)", err.Error())
	assert.False(t, errors.Is(err, cosmosload.ErrConnectionFailed), "not fatal for the run")
	assert.Empty(t, fake.calls)

	var upsertErr *UpsertError
	require.True(t, errors.As(err, &upsertErr))
	assert.Equal(t, http.StatusNotFound, upsertErr.StatusCode)

	// A later record retries the read.
	fake.readErr = nil
	_, err = c.Upsert(context.Background(), record(t, `{"id":"u2","tenantId":"t1"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, fake.reads)
	require.Len(t, fake.calls, 1)
}

func TestContainer_ReadWithoutPartitionKeyPaths(t *testing.T) {
	fake := &fakeContainer{}
	c, err := newContainer("Users", fake, nil)
	require.NoError(t, err)

	_, err = c.Upsert(context.Background(), record(t, `{"id":"u1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reports no partition key paths")
	assert.Empty(t, fake.calls)
}

func TestOpener_ContainerClientFailure(t *testing.T) {
	opener := newOpener("db", logging.NewNullLogger(), func(string) (containerAPI, error) {
		return nil, errors.New("invalid id")
	})

	_, err := opener.OpenContainer(context.Background(), cosmosload.DatasetSpec{Container: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cosmosload.ErrConnectionFailed))
}

func TestContainer_Upsert_ServiceError(t *testing.T) {
	respErr := &azcore.ResponseError{StatusCode: http.StatusConflict, ErrorCode: "Conflict"}
	fake := &fakeContainer{upsertErr: respErr}
	c, err := newContainer("Users", fake, []string{"/tenantId"})
	require.NoError(t, err)

	_, err = c.Upsert(context.Background(), record(t, `{"id":"u1","tenantId":"t1"}`))
	require.Error(t, err)

	var upsertErr *UpsertError
	require.True(t, errors.As(err, &upsertErr))
	assert.Equal(t, http.StatusConflict, upsertErr.StatusCode)
	assert.Equal(t, "status 409 Conflict (Conflict)", upsertErr.Error())

	var inner *azcore.ResponseError
	assert.True(t, errors.As(err, &inner), "service error stays reachable")
}

func TestContainer_Upsert_TransportError(t *testing.T) {
	fake := &fakeContainer{upsertErr: errors.New("connection reset by peer")}
	c, err := newContainer("Users", fake, []string{"/tenantId"})
	require.NoError(t, err)

	_, err = c.Upsert(context.Background(), record(t, `{"id":"u1","tenantId":"t1"}`))
	require.Error(t, err)
	assert.Equal(t, "connection reset by peer", err.Error())
}

func TestContainer_Upsert_BadPartitionValueSkipsRequest(t *testing.T) {
	fake := &fakeContainer{}
	c, err := newContainer("Users", fake, []string{"/tenantId"})
	require.NoError(t, err)

	_, err = c.Upsert(context.Background(), record(t, `{"id":"u1","tenantId":{"nested":true}}`))
	require.Error(t, err)
	assert.Empty(t, fake.calls)
}

func TestContainer_Upsert_InexactIntegerSkipsRequest(t *testing.T) {
	fake := &fakeContainer{}
	c, err := newContainer("AccountsData", fake, []string{"/accountNumber"})
	require.NoError(t, err)

	_, err = c.Upsert(context.Background(), record(t, `{"id":"a1","accountNumber":9007199254740993}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be represented exactly")
	assert.Empty(t, fake.calls)
}
