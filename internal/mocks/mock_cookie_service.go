package mocks

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/you/hrmportal/domain"
)

// MockCookieService implements domain.CookieService interface for testing.
// The default codec prefixes the session ID so tests can mint valid
// cookies by hand.
type MockCookieService struct {
	IssueFunc        func(sessionID string) (string, error)
	ValidateFunc     func(cookie string) (string, error)
	NewSessionIDFunc func() string

	seq atomic.Int64
}

// Compile-time interface compliance verification
var _ domain.CookieService = (*MockCookieService)(nil)

// NewMockCookieService creates a new MockCookieService with default behaviors
func NewMockCookieService() *MockCookieService {
	return &MockCookieService{}
}

func (m *MockCookieService) Issue(sessionID string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(sessionID)
	}
	return "signed:" + sessionID, nil
}

func (m *MockCookieService) Validate(cookie string) (string, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(cookie)
	}
	sid, ok := strings.CutPrefix(cookie, "signed:")
	if !ok || sid == "" {
		return "", domain.ErrCookieInvalid
	}
	return sid, nil
}

func (m *MockCookieService) NewSessionID() string {
	if m.NewSessionIDFunc != nil {
		return m.NewSessionIDFunc()
	}
	return fmt.Sprintf("sess-%d", m.seq.Add(1))
}
