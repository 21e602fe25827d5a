package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Session lifecycle events
	UserLoginEvent          AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent   AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent         AuditEventType = "USER_LOGOUT"
	SessionInvalidatedEvent AuditEventType = "SESSION_INVALIDATED"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"

	// Directory administration events
	EmployeeCreatedEvent       AuditEventType = "EMPLOYEE_CREATED"
	EmployeeVerifiedEvent      AuditEventType = "EMPLOYEE_VERIFIED"
	EmployeeStatusToggledEvent AuditEventType = "EMPLOYEE_STATUS_TOGGLED"

	// Self-service events
	DetailsSubmittedEvent AuditEventType = "DETAILS_SUBMITTED"
	AttendanceMarkedEvent AuditEventType = "ATTENDANCE_MARKED"
	LeaveRequestedEvent   AuditEventType = "LEAVE_REQUESTED"
	LeaveActionedEvent    AuditEventType = "LEAVE_ACTIONED"
)

// AuditEvent represents a business event that occurred in the portal
type AuditEvent struct {
	EventType  AuditEventType         `json:"event_type"`
	EmployeeID string                 `json:"employee_id,omitempty"`
	Email      string                 `json:"email,omitempty"`
	SessionID  string                 `json:"session_id,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg   string                 `json:"error_msg,omitempty"`
	Success    bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, employeeID string) *AuditEvent {
	return &AuditEvent{
		EventType:  eventType,
		EmployeeID: employeeID,
		Timestamp:  time.Now().UTC(),
		Metadata:   make(map[string]interface{}),
		Success:    true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithSession sets the session the event belongs to
func (e *AuditEvent) WithSession(sessionID string) *AuditEvent {
	e.SessionID = sessionID
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
