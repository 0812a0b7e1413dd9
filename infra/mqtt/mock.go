package mqtt

import (
	"context"
	"sync"

	"github.com/kilianp07/evoroute/core/archive"
)

// MockPublisher records published solutions for tests.
type MockPublisher struct {
	mu      sync.Mutex
	records []archive.Record
	Err     error
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishBest stores the record or returns the configured error.
func (m *MockPublisher) PublishBest(_ context.Context, rec archive.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.records = append(m.records, rec)
	return nil
}

// Close implements the live publisher interface.
func (m *MockPublisher) Close() error { return nil }

// Published returns a copy of the records published so far.
func (m *MockPublisher) Published() []archive.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]archive.Record(nil), m.records...)
}
