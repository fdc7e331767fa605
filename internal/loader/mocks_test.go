package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// recordingUpserter captures every upsert and fails the labels listed in failOn.
type recordingUpserter struct {
	calls  []cosmosload.Record
	failOn map[string]error
	result cosmosload.UpsertResult
	onCall func(n int)
}

func (m *recordingUpserter) Upsert(_ context.Context, record cosmosload.Record) (cosmosload.UpsertResult, error) {
	m.calls = append(m.calls, record)
	if m.onCall != nil {
		m.onCall(len(m.calls))
	}
	if err, ok := m.failOn[record.Label()]; ok {
		return cosmosload.UpsertResult{}, err
	}
	return m.result, nil
}

func (m *recordingUpserter) labels() []string {
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Label())
	}
	return out
}

// memoryContainer keeps the last body written per id.
type memoryContainer struct {
	items map[string]string
}

func (m *memoryContainer) Upsert(_ context.Context, record cosmosload.Record) (cosmosload.UpsertResult, error) {
	if m.items == nil {
		m.items = make(map[string]string)
	}
	m.items[record.ID] = string(record.Raw)
	return cosmosload.UpsertResult{}, nil
}

type captureLogger struct {
	mu      sync.Mutex
	info    []string
	errors  []string
	verbose []string
}

func (l *captureLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
