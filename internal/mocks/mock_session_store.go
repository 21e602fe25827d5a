package mocks

import (
	"context"
	"sync"

	"github.com/you/hrmportal/domain"
)

// MockSessionStore implements domain.SessionStore interface for testing.
// The default behavior is a working in-memory store.
type MockSessionStore struct {
	RestoreFunc func(ctx context.Context, sessionID string) (*domain.User, string, error)
	PersistFunc func(ctx context.Context, sessionID string, user *domain.User, token string) error
	ClearFunc   func(ctx context.Context, sessionID string) error

	mu       sync.Mutex
	sessions map[string]storedSession
}

type storedSession struct {
	user  *domain.User
	token string
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]storedSession)}
}

// Restore reads a stored session
func (m *MockSessionStore) Restore(ctx context.Context, sessionID string) (*domain.User, string, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, "", nil
	}
	return s.user, s.token, nil
}

// Persist writes user and token together
func (m *MockSessionStore) Persist(ctx context.Context, sessionID string, user *domain.User, token string) error {
	if m.PersistFunc != nil {
		return m.PersistFunc(ctx, sessionID, user, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = storedSession{user: user, token: token}
	return nil
}

// Clear removes a stored session
func (m *MockSessionStore) Clear(ctx context.Context, sessionID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Snapshot returns the stored state for assertions.
func (m *MockSessionStore) Snapshot(sessionID string) (*domain.User, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[sessionID]
	return s.user, s.token
}
