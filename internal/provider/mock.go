package provider

import (
	"context"
	"fmt"
	"time"
)

// MockAdapter provides canned replies for tests and local development.
// Replies are deterministic per query so repeated calls are comparable.
type MockAdapter struct {
	name    string
	latency time.Duration
}

// NewMockAdapter creates a mock adapter registered under name.
func NewMockAdapter(name string, latency time.Duration) *MockAdapter {
	if name == "" {
		name = "mock"
	}
	return &MockAdapter{name: name, latency: latency}
}

func (m *MockAdapter) Name() string {
	return m.name
}

func (m *MockAdapter) Respond(ctx context.Context, query string) (Result, error) {
	if m.latency > 0 {
		select {
		case <-time.After(m.latency):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	reply := fmt.Sprintf("mock reply for: %s", query)
	return Result{Reply: reply, Tokens: len(query)}, nil
}
