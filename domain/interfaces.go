package domain

import "context"

// SessionStore defines durable persistence of exactly two values per
// session: the serialized user record and the bearer token. Restore
// treats malformed stored data as absent, never as a failure.
type SessionStore interface {
	Restore(ctx context.Context, sessionID string) (*User, string, error)
	Persist(ctx context.Context, sessionID string, user *User, token string) error
	Clear(ctx context.Context, sessionID string) error
}

// SessionService defines the login/logout lifecycle of a session.
type SessionService interface {
	Login(ctx context.Context, sessionID, employeeID, password string, expectedRole Role) (*LoginResult, error)
	Restore(ctx context.Context, sessionID string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	Invalidate(ctx context.Context, sessionID string) error
}

// CookieService mints and validates the signed cookie that addresses a
// browser's server-side session.
type CookieService interface {
	Issue(sessionID string) (string, error)
	Validate(cookie string) (string, error)
	NewSessionID() string
}

// Notifier defines one-shot user-facing notifications tied to a session.
type Notifier interface {
	Push(ctx context.Context, sessionID, level, message string) error
	Drain(ctx context.Context, sessionID string) ([]Flash, error)
}

// HRMClient is the typed client for the external HRM backend. Every
// response is decoded and validated at this boundary; a 401 from any
// call surfaces as ErrSessionInvalid.
type HRMClient interface {
	Login(ctx context.Context, employeeID, password string) (*LoginData, error)

	MyDetails(ctx context.Context, token string) (*EmployeeProfile, error)
	SubmitDetails(ctx context.Context, token string, sub *DetailsSubmission) (*EmployeeProfile, error)

	ListEmployees(ctx context.Context, token string) ([]Employee, error)
	CreateEmployee(ctx context.Context, token, email string, role Role) (*CreatedEmployee, error)
	EmployeeDetail(ctx context.Context, token, employeeID string) (*EmployeeDetail, error)
	VerifyEmployee(ctx context.Context, token, employeeID string, status VerificationStatus) error
	ToggleEmployeeStatus(ctx context.Context, token, employeeID string, isActive bool) error

	MarkAttendance(ctx context.Context, token string, mark *AttendanceMark) error
	MyAttendance(ctx context.Context, token, month string) ([]AttendanceRecord, error)
	AttendanceSummary(ctx context.Context, token, month string) (*AttendanceSummary, error)

	LeaveBalance(ctx context.Context, token string) (*LeaveBalance, error)
	RequestLeave(ctx context.Context, token string, app *LeaveApplication) (*LeaveRequest, error)
	MyLeaves(ctx context.Context, token string) ([]LeaveRequest, error)
	AllLeaves(ctx context.Context, token string) ([]LeaveRequest, error)
	CancelLeaveRequest(ctx context.Context, token, leaveID string) error
	ActionLeave(ctx context.Context, token, leaveID string, action LeaveAction, comment string) error
	CancelApprove(ctx context.Context, token, leaveID string) error
}

// LoginData is the validated payload of a successful credential exchange.
type LoginData struct {
	Token    string
	Employee LoginEmployee
}

// LoginEmployee is the identity block of the login response.
type LoginEmployee struct {
	EmployeeID         string
	Email              string
	Name               string
	Role               Role
	VerificationStatus VerificationStatus
}

// DetailsSubmission carries the profile form plus document uploads for
// multipart passthrough to the backend.
type DetailsSubmission struct {
	Name    string
	Email   string
	Contact string
	Files   []UploadFile
}

// UploadFile is one document part of a details submission.
type UploadFile struct {
	Field    string
	Filename string
	Content  []byte
}

// PolicyService defines authorization policy operations.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the Casbin enforcer the portal needs.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// DirectoryExporter renders the employee directory as a spreadsheet.
type DirectoryExporter interface {
	EmployeeWorkbook(employees []Employee) ([]byte, error)
}

// AuditLogger records business events for the audit trail.
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}
