package test

import (
	"context"
	"net/url"
	"sync"

	"github.com/jwodder/axum-hammer/internal/jobs"
)

// MockGetter implements jobs.Getter for testing.
type MockGetter struct {
	Body []byte
	Err  error

	mu        sync.Mutex
	requested []string
}

// Get returns the configured body and error and records u.
func (m *MockGetter) Get(_ context.Context, u *url.URL) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = append(m.requested, u.String())
	return m.Body, m.Err
}

// Requested returns every URL passed to Get, in call order.
func (m *MockGetter) Requested() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requested...)
}

// NewMockGetter creates a MockGetter answering with body.
func NewMockGetter(body string) *MockGetter {
	return &MockGetter{Body: []byte(body)}
}

// Ensure MockGetter implements jobs.Getter.
var _ jobs.Getter = (*MockGetter)(nil)
