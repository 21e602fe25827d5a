package mocks

import (
	"context"

	"github.com/you/hrmportal/domain"
)

// MockSessionService implements domain.SessionService interface for testing
type MockSessionService struct {
	LoginFunc      func(ctx context.Context, sessionID, employeeID, password string, expectedRole domain.Role) (*domain.LoginResult, error)
	RestoreFunc    func(ctx context.Context, sessionID string) (*domain.Session, error)
	LogoutFunc     func(ctx context.Context, sessionID string) error
	InvalidateFunc func(ctx context.Context, sessionID string) error

	// Invalidated records the session IDs torn down via Invalidate.
	Invalidated []string
	// LoggedOut records the session IDs torn down via Logout.
	LoggedOut []string
}

// Compile-time interface compliance verification
var _ domain.SessionService = (*MockSessionService)(nil)

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Login(ctx context.Context, sessionID, employeeID, password string, expectedRole domain.Role) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, sessionID, employeeID, password, expectedRole)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockSessionService) Restore(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, sessionID)
	}
	return domain.Anonymous(), nil
}

func (m *MockSessionService) Logout(ctx context.Context, sessionID string) error {
	m.LoggedOut = append(m.LoggedOut, sessionID)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSessionService) Invalidate(ctx context.Context, sessionID string) error {
	m.Invalidated = append(m.Invalidated, sessionID)
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, sessionID)
	}
	return nil
}
