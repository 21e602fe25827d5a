package mocks

import (
	"context"
	"sync"

	"github.com/you/hrmportal/domain"
)

// MockHRMClient implements domain.HRMClient interface for testing
type MockHRMClient struct {
	LoginFunc                func(ctx context.Context, employeeID, password string) (*domain.LoginData, error)
	MyDetailsFunc            func(ctx context.Context, token string) (*domain.EmployeeProfile, error)
	SubmitDetailsFunc        func(ctx context.Context, token string, sub *domain.DetailsSubmission) (*domain.EmployeeProfile, error)
	ListEmployeesFunc        func(ctx context.Context, token string) ([]domain.Employee, error)
	CreateEmployeeFunc       func(ctx context.Context, token, email string, role domain.Role) (*domain.CreatedEmployee, error)
	EmployeeDetailFunc       func(ctx context.Context, token, employeeID string) (*domain.EmployeeDetail, error)
	VerifyEmployeeFunc       func(ctx context.Context, token, employeeID string, status domain.VerificationStatus) error
	ToggleEmployeeStatusFunc func(ctx context.Context, token, employeeID string, isActive bool) error
	MarkAttendanceFunc       func(ctx context.Context, token string, mark *domain.AttendanceMark) error
	MyAttendanceFunc         func(ctx context.Context, token, month string) ([]domain.AttendanceRecord, error)
	AttendanceSummaryFunc    func(ctx context.Context, token, month string) (*domain.AttendanceSummary, error)
	LeaveBalanceFunc         func(ctx context.Context, token string) (*domain.LeaveBalance, error)
	RequestLeaveFunc         func(ctx context.Context, token string, app *domain.LeaveApplication) (*domain.LeaveRequest, error)
	MyLeavesFunc             func(ctx context.Context, token string) ([]domain.LeaveRequest, error)
	AllLeavesFunc            func(ctx context.Context, token string) ([]domain.LeaveRequest, error)
	CancelLeaveRequestFunc   func(ctx context.Context, token, leaveID string) error
	ActionLeaveFunc          func(ctx context.Context, token, leaveID string, action domain.LeaveAction, comment string) error
	CancelApproveFunc        func(ctx context.Context, token, leaveID string) error

	mu sync.Mutex
	// calls records the method invocation order for sequencing assertions.
	calls []string
}

// Compile-time interface compliance verification
var _ domain.HRMClient = (*MockHRMClient)(nil)

// NewMockHRMClient creates a new MockHRMClient with default behaviors
func NewMockHRMClient() *MockHRMClient {
	return &MockHRMClient{}
}

func (m *MockHRMClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the method invocation order so far.
func (m *MockHRMClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockHRMClient) Login(ctx context.Context, employeeID, password string) (*domain.LoginData, error) {
	m.record("Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, employeeID, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockHRMClient) MyDetails(ctx context.Context, token string) (*domain.EmployeeProfile, error) {
	m.record("MyDetails")
	if m.MyDetailsFunc != nil {
		return m.MyDetailsFunc(ctx, token)
	}
	return &domain.EmployeeProfile{}, nil
}

func (m *MockHRMClient) SubmitDetails(ctx context.Context, token string, sub *domain.DetailsSubmission) (*domain.EmployeeProfile, error) {
	m.record("SubmitDetails")
	if m.SubmitDetailsFunc != nil {
		return m.SubmitDetailsFunc(ctx, token, sub)
	}
	return &domain.EmployeeProfile{Name: sub.Name, Email: sub.Email, Phone: sub.Contact}, nil
}

func (m *MockHRMClient) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	m.record("ListEmployees")
	if m.ListEmployeesFunc != nil {
		return m.ListEmployeesFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockHRMClient) CreateEmployee(ctx context.Context, token, email string, role domain.Role) (*domain.CreatedEmployee, error) {
	m.record("CreateEmployee")
	if m.CreateEmployeeFunc != nil {
		return m.CreateEmployeeFunc(ctx, token, email, role)
	}
	return &domain.CreatedEmployee{EmployeeID: "EMP001", Email: email, TempPassword: "temp"}, nil
}

func (m *MockHRMClient) EmployeeDetail(ctx context.Context, token, employeeID string) (*domain.EmployeeDetail, error) {
	m.record("EmployeeDetail")
	if m.EmployeeDetailFunc != nil {
		return m.EmployeeDetailFunc(ctx, token, employeeID)
	}
	return &domain.EmployeeDetail{}, nil
}

func (m *MockHRMClient) VerifyEmployee(ctx context.Context, token, employeeID string, status domain.VerificationStatus) error {
	m.record("VerifyEmployee")
	if m.VerifyEmployeeFunc != nil {
		return m.VerifyEmployeeFunc(ctx, token, employeeID, status)
	}
	return nil
}

func (m *MockHRMClient) ToggleEmployeeStatus(ctx context.Context, token, employeeID string, isActive bool) error {
	m.record("ToggleEmployeeStatus")
	if m.ToggleEmployeeStatusFunc != nil {
		return m.ToggleEmployeeStatusFunc(ctx, token, employeeID, isActive)
	}
	return nil
}

func (m *MockHRMClient) MarkAttendance(ctx context.Context, token string, mark *domain.AttendanceMark) error {
	m.record("MarkAttendance")
	if m.MarkAttendanceFunc != nil {
		return m.MarkAttendanceFunc(ctx, token, mark)
	}
	return nil
}

func (m *MockHRMClient) MyAttendance(ctx context.Context, token, month string) ([]domain.AttendanceRecord, error) {
	m.record("MyAttendance")
	if m.MyAttendanceFunc != nil {
		return m.MyAttendanceFunc(ctx, token, month)
	}
	return nil, nil
}

func (m *MockHRMClient) AttendanceSummary(ctx context.Context, token, month string) (*domain.AttendanceSummary, error) {
	m.record("AttendanceSummary")
	if m.AttendanceSummaryFunc != nil {
		return m.AttendanceSummaryFunc(ctx, token, month)
	}
	return &domain.AttendanceSummary{Month: month}, nil
}

func (m *MockHRMClient) LeaveBalance(ctx context.Context, token string) (*domain.LeaveBalance, error) {
	m.record("LeaveBalance")
	if m.LeaveBalanceFunc != nil {
		return m.LeaveBalanceFunc(ctx, token)
	}
	return &domain.LeaveBalance{}, nil
}

func (m *MockHRMClient) RequestLeave(ctx context.Context, token string, app *domain.LeaveApplication) (*domain.LeaveRequest, error) {
	m.record("RequestLeave")
	if m.RequestLeaveFunc != nil {
		return m.RequestLeaveFunc(ctx, token, app)
	}
	return &domain.LeaveRequest{FromDate: app.FromDate, ToDate: app.ToDate, Status: domain.LeavePending}, nil
}

func (m *MockHRMClient) MyLeaves(ctx context.Context, token string) ([]domain.LeaveRequest, error) {
	m.record("MyLeaves")
	if m.MyLeavesFunc != nil {
		return m.MyLeavesFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockHRMClient) AllLeaves(ctx context.Context, token string) ([]domain.LeaveRequest, error) {
	m.record("AllLeaves")
	if m.AllLeavesFunc != nil {
		return m.AllLeavesFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockHRMClient) CancelLeaveRequest(ctx context.Context, token, leaveID string) error {
	m.record("CancelLeaveRequest")
	if m.CancelLeaveRequestFunc != nil {
		return m.CancelLeaveRequestFunc(ctx, token, leaveID)
	}
	return nil
}

func (m *MockHRMClient) ActionLeave(ctx context.Context, token, leaveID string, action domain.LeaveAction, comment string) error {
	m.record("ActionLeave")
	if m.ActionLeaveFunc != nil {
		return m.ActionLeaveFunc(ctx, token, leaveID, action, comment)
	}
	return nil
}

func (m *MockHRMClient) CancelApprove(ctx context.Context, token, leaveID string) error {
	m.record("CancelApprove")
	if m.CancelApproveFunc != nil {
		return m.CancelApproveFunc(ctx, token, leaveID)
	}
	return nil
}
