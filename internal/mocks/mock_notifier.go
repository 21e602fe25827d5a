package mocks

import (
	"context"
	"sync"

	"github.com/you/hrmportal/domain"
)

// MockNotifier implements domain.Notifier interface for testing
type MockNotifier struct {
	PushFunc  func(ctx context.Context, sessionID, level, message string) error
	DrainFunc func(ctx context.Context, sessionID string) ([]domain.Flash, error)

	mu     sync.Mutex
	queues map[string][]domain.Flash
}

// Compile-time interface compliance verification
var _ domain.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a new MockNotifier backed by an in-memory queue
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{queues: make(map[string][]domain.Flash)}
}

func (m *MockNotifier) Push(ctx context.Context, sessionID, level, message string) error {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, sessionID, level, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[sessionID] = append(m.queues[sessionID], domain.Flash{Level: level, Message: message})
	return nil
}

func (m *MockNotifier) Drain(ctx context.Context, sessionID string) ([]domain.Flash, error) {
	if m.DrainFunc != nil {
		return m.DrainFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.queues[sessionID]
	delete(m.queues, sessionID)
	return out, nil
}

// Pushed returns the undrained flashes for a session without consuming them.
func (m *MockNotifier) Pushed(sessionID string) []domain.Flash {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Flash, len(m.queues[sessionID]))
	copy(out, m.queues[sessionID])
	return out
}
