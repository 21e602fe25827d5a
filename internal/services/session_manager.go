package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
)

// Portal navigation targets. Each portal's login and home routes have
// exactly one definition; guards and handlers share these.
const (
	LandingRoute       = "/"
	AdminLoginRoute    = "/admin/login"
	AdminHomeRoute     = "/admin/dashboard"
	EmployeeLoginRoute = "/employee/login"
	EmployeeHomeRoute  = "/employee/dashboard"
)

// HomeRoute resolves the post-login dashboard for a role.
func HomeRoute(role domain.Role) string {
	if role == domain.RoleAdmin {
		return AdminHomeRoute
	}
	return EmployeeHomeRoute
}

// LoginRoute resolves the login page of the portal owning a role.
func LoginRoute(role domain.Role) string {
	if role == domain.RoleAdmin {
		return AdminLoginRoute
	}
	return EmployeeLoginRoute
}

// SessionManagerImpl implements domain.SessionService. It is the single
// writer of the session store; everything else reads session snapshots.
type SessionManagerImpl struct {
	store    domain.SessionStore
	hrm      domain.HRMClient
	notifier domain.Notifier
	audit    domain.AuditLogger
	log      *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewSessionManager creates a new session manager.
func NewSessionManager(
	store domain.SessionStore,
	hrm domain.HRMClient,
	notifier domain.Notifier,
	audit domain.AuditLogger,
	log *zap.Logger,
) domain.SessionService {
	return &SessionManagerImpl{
		store:    store,
		hrm:      hrm,
		notifier: notifier,
		audit:    audit,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

func (m *SessionManagerImpl) acquire(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inflight[sessionID]; busy {
		return false
	}
	m.inflight[sessionID] = struct{}{}
	return true
}

func (m *SessionManagerImpl) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, sessionID)
}

// deriveName falls back to the local part of the email when the backend
// omits a display name, then to the employee ID.
func deriveName(emp *domain.LoginEmployee) string {
	if emp.Name != "" {
		return emp.Name
	}
	if at := strings.Index(emp.Email, "@"); at > 0 {
		return emp.Email[:at]
	}
	return emp.EmployeeID
}

// Login implements domain.SessionService. On success the base session
// is persisted and published before the employee-only profile
// enrichment runs; enrichment failure never rolls the session back.
// On any failure the session is left exactly as it was. The
// expectedRole argument is advisory only; the backend's role decides
// where the user lands.
func (m *SessionManagerImpl) Login(ctx context.Context, sessionID, employeeID, password string, expectedRole domain.Role) (*domain.LoginResult, error) {
	if !m.acquire(sessionID) {
		return nil, domain.ErrLoginInFlight
	}
	defer m.release(sessionID)

	if employeeID == "" || password == "" {
		m.notifyError(ctx, sessionID, domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	data, err := m.hrm.Login(ctx, employeeID, password)
	if err != nil {
		m.notifyError(ctx, sessionID, err)
		m.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, employeeID).
			WithSession(sessionID).WithError(err))
		return nil, err
	}

	if expectedRole != "" && data.Employee.Role != expectedRole {
		m.log.Info("login role differs from portal login page",
			zap.String("employee_id", data.Employee.EmployeeID),
			zap.String("expected", string(expectedRole)),
			zap.String("actual", string(data.Employee.Role)))
	}

	user := &domain.User{
		ID:                 data.Employee.EmployeeID,
		Name:               deriveName(&data.Employee),
		Email:              data.Employee.Email,
		Role:               data.Employee.Role,
		VerificationStatus: data.Employee.VerificationStatus,
	}

	if err := m.store.Persist(ctx, sessionID, user, data.Token); err != nil {
		m.notifyError(ctx, sessionID, err)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	if user.Role == domain.RoleEmployee {
		m.enrichProfile(ctx, sessionID, user, data.Token)
	}

	if err := m.notifier.Push(ctx, sessionID, domain.FlashSuccess, "Welcome "+user.Name+"!"); err != nil {
		m.log.Warn("failed to push welcome flash", zap.Error(err))
	}
	m.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).
		WithEmail(user.Email).WithSession(sessionID).
		WithMetadata("role", string(user.Role)))

	return &domain.LoginResult{
		Session:  &domain.Session{User: user, Token: data.Token},
		Redirect: HomeRoute(user.Role),
	}, nil
}

// enrichProfile fetches the employee's submitted profile. Best effort:
// failure is logged and swallowed, the base session stands.
func (m *SessionManagerImpl) enrichProfile(ctx context.Context, sessionID string, user *domain.User, token string) {
	profile, err := m.hrm.MyDetails(ctx, token)
	if err != nil {
		m.log.Warn("employee profile enrichment failed",
			zap.String("employee_id", user.ID), zap.Error(err))
		return
	}

	user.Profile = profile
	if err := m.store.Persist(ctx, sessionID, user, token); err != nil {
		m.log.Warn("failed to persist enriched session",
			zap.String("employee_id", user.ID), zap.Error(err))
	}
}

// Restore implements domain.SessionService
func (m *SessionManagerImpl) Restore(ctx context.Context, sessionID string) (*domain.Session, error) {
	user, token, err := m.store.Restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if user == nil || token == "" {
		return domain.Anonymous(), nil
	}
	return &domain.Session{User: user, Token: token}, nil
}

// Logout implements domain.SessionService. Idempotent: logging out
// with no active session still notifies and succeeds.
func (m *SessionManagerImpl) Logout(ctx context.Context, sessionID string) error {
	user, _, _ := m.store.Restore(ctx, sessionID)

	if err := m.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := m.notifier.Push(ctx, sessionID, domain.FlashInfo, "Logged out"); err != nil {
		m.log.Warn("failed to push logout flash", zap.Error(err))
	}

	event := domain.NewAuditEvent(domain.UserLogoutEvent, "").WithSession(sessionID)
	if user != nil {
		event.EmployeeID = user.ID
	}
	m.audit.LogEvent(ctx, event)
	return nil
}

// Invalidate implements domain.SessionService. Central handling for an
// upstream 401: the stale session is cleared no matter which page hit it.
func (m *SessionManagerImpl) Invalidate(ctx context.Context, sessionID string) error {
	if err := m.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := m.notifier.Push(ctx, sessionID, domain.FlashError, "Session expired. Please login again."); err != nil {
		m.log.Warn("failed to push invalidation flash", zap.Error(err))
	}
	m.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SessionInvalidatedEvent, "").WithSession(sessionID))
	return nil
}

func (m *SessionManagerImpl) notifyError(ctx context.Context, sessionID string, err error) {
	if pushErr := m.notifier.Push(ctx, sessionID, domain.FlashError, domain.UserMessage(err)); pushErr != nil {
		m.log.Warn("failed to push error flash", zap.Error(pushErr))
	}
}
