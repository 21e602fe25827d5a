package domain

import (
	"strings"
	"time"
)

// Role identifies which portal a user belongs to.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseRole validates a role string coming from the upstream backend.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", ErrUnknownRole
	}
}

// VerificationStatus is the admin-controlled approval state of an
// employee's submitted documents.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// UploadedDoc references a document held by the external storage service.
type UploadedDoc struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// EmployeeProfile is the employee-submitted profile enrichment.
type EmployeeProfile struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Phone   string       `json:"phone"`
	Photo   *UploadedDoc `json:"photo,omitempty"`
	Aadhaar *UploadedDoc `json:"aadhaar,omitempty"`
	PAN     *UploadedDoc `json:"pan,omitempty"`
}

// User is the session-scoped identity derived from a login exchange.
// Role is immutable for the lifetime of a session.
type User struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email,omitempty"`
	Role               Role               `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty"`
	Profile            *EmployeeProfile   `json:"profile,omitempty"`
}

// Verified reports whether the employee may use the full portal.
func (u *User) Verified() bool {
	return u != nil && u.VerificationStatus == VerificationApproved
}

// Session is a snapshot of the current session state. User and Token are
// set and cleared together, never one without the other.
type Session struct {
	User  *User
	Token string
}

// Authenticated reports whether the session carries a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// Anonymous is the session of a visitor with no established login.
func Anonymous() *Session { return &Session{} }

// LoginResult is the outcome of a successful credential exchange.
type LoginResult struct {
	Session  *Session
	Redirect string
}

// Employee is a directory record as reported by the upstream backend.
type Employee struct {
	EmployeeID         string             `json:"employeeId"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Role               Role               `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt,omitempty"`
}

// CreatedEmployee is returned when an administrator provisions an
// account; the temporary password is shown exactly once.
type CreatedEmployee struct {
	EmployeeID   string `json:"employeeId"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
}

// EmployeeDetail is the full admin-side view of one employee.
type EmployeeDetail struct {
	Employee
	Profile *EmployeeProfile `json:"profile,omitempty"`
}

// WorkMode distinguishes office from home attendance.
type WorkMode string

const (
	WorkFromOffice WorkMode = "WFO"
	WorkFromHome   WorkMode = "WFH"
)

// AttendanceMark is the payload for recording attendance on a date.
// Coordinates are required for office mode only.
type AttendanceMark struct {
	Date      string   `json:"date"`
	WorkMode  WorkMode `json:"workMode"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// AttendanceRecord is one marked day as reported by the backend.
type AttendanceRecord struct {
	Date     string   `json:"date"`
	WorkMode WorkMode `json:"workMode"`
	Status   string   `json:"status"`
}

// AttendanceSummary aggregates one month of attendance.
type AttendanceSummary struct {
	Month          string `json:"month"`
	WorkingDays    int    `json:"workingDays"`
	Present        int    `json:"present"`
	WorkFromOffice int    `json:"wfo"`
	WorkFromHome   int    `json:"wfh"`
	Late           int    `json:"late"`
}

// LeaveBalance mirrors the backend's leave accounting.
type LeaveBalance struct {
	TotalLeaves     float64 `json:"totalLeaves"`
	UsedLeaves      float64 `json:"usedLeaves"`
	AvailableLeaves float64 `json:"availableLeaves"`
	NegativeLeaves  float64 `json:"negativeLeaves"`
}

// LeaveStatus is the approval state of a leave request.
type LeaveStatus string

const (
	LeavePending         LeaveStatus = "PENDING"
	LeaveApproved        LeaveStatus = "APPROVED"
	LeaveRejected        LeaveStatus = "REJECTED"
	LeaveCancelRequested LeaveStatus = "CANCEL_REQUESTED"
	LeaveCancelled       LeaveStatus = "CANCELLED"
)

// LeaveRequest is one leave application.
type LeaveRequest struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName,omitempty"`
	FromDate     string      `json:"fromDate"`
	ToDate       string      `json:"toDate"`
	Reason       string      `json:"reason"`
	Days         float64     `json:"days,omitempty"`
	Status       LeaveStatus `json:"status"`
	AppliedAt    time.Time   `json:"appliedAt,omitempty"`
}

// LeaveApplication is the payload for submitting a leave request.
type LeaveApplication struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Reason   string `json:"reason"`
}

// LeaveAction is an administrator decision on a pending request.
type LeaveAction string

const (
	LeaveActionApprove LeaveAction = "APPROVE"
	LeaveActionReject  LeaveAction = "REJECT"
)

// Flash is a one-shot user-facing notification, drained on next read.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Flash levels.
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)
