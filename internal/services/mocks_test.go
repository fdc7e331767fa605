package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// fakeOpener hands out one fakeTarget per container and records open order.
type fakeOpener struct {
	targets map[string]*fakeTarget
	opened  []string
	openErr map[string]error
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{targets: make(map[string]*fakeTarget), openErr: make(map[string]error)}
}

func (m *fakeOpener) OpenContainer(_ context.Context, ds cosmosload.DatasetSpec) (cosmosload.Upserter, error) {
	m.opened = append(m.opened, ds.Container)
	if err, ok := m.openErr[ds.Container]; ok {
		return nil, err
	}
	t, ok := m.targets[ds.Container]
	if !ok {
		t = &fakeTarget{}
		m.targets[ds.Container] = t
	}
	return t, nil
}

type fakeTarget struct {
	calls  []string
	failOn map[string]error
}

func (m *fakeTarget) Upsert(_ context.Context, record cosmosload.Record) (cosmosload.UpsertResult, error) {
	m.calls = append(m.calls, record.Label())
	if err, ok := m.failOn[record.Label()]; ok {
		return cosmosload.UpsertResult{}, err
	}
	return cosmosload.UpsertResult{RequestCharge: 1.5, ActivityID: "act"}, nil
}

// factoryRecorder counts how often the opener factory is invoked.
type factoryRecorder struct {
	opener cosmosload.ContainerOpener
	err    error
	calls  int
}

func (f *factoryRecorder) factory(_ *cosmosload.LoadConfig) (cosmosload.ContainerOpener, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.opener, nil
}

type mockLogger struct {
	mu      sync.Mutex
	info    []string
	errors  []string
	verbose []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verbose = append(m.verbose, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = append(m.info, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}
