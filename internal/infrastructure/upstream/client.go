package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
)

// maxResponseBytes bounds how much of an upstream body is read; error
// pages from misconfigured proxies can be arbitrarily large.
const maxResponseBytes = 4 << 20

// ClientImpl implements domain.HRMClient over JSON/HTTPS.
type ClientImpl struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a new HRM backend client.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) domain.HRMClient {
	return &ClientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *ClientImpl) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, token, contentType, reader)
}

func (c *ClientImpl) send(ctx context.Context, method, path, token, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %v", domain.ErrUpstreamUnavailable, method, path, err)
	}

	// Any 401 means the bearer token is no longer honored; callers
	// must treat the whole session as invalid.
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrSessionInvalid
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Warn("upstream returned non-JSON body",
			zap.String("method", method), zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s %s returned status %d", domain.ErrUpstreamDecode, method, path, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// Login implements domain.HRMClient
func (c *ClientImpl) Login(ctx context.Context, employeeID, password string) (*domain.LoginData, error) {
	payload := map[string]string{"employeeId": employeeID, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", payload)
	if err != nil {
		return nil, err
	}

	wire, err := decodeData[wireLogin](env)
	if err != nil {
		return nil, err
	}
	if wire.Token == "" {
		return nil, fmt.Errorf("%w: login response without token", domain.ErrUpstreamDecode)
	}
	emp, err := wire.Employee.toLogin()
	if err != nil {
		return nil, err
	}
	return &domain.LoginData{Token: wire.Token, Employee: *emp}, nil
}

// MyDetails implements domain.HRMClient
func (c *ClientImpl) MyDetails(ctx context.Context, token string) (*domain.EmployeeProfile, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/employee/details/me", token, nil)
	if err != nil {
		return nil, err
	}
	wire, err := decodeData[wireProfile](env)
	if err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

// SubmitDetails implements domain.HRMClient. Profile fields and
// document uploads travel as one multipart body, matching the
// backend's upload contract.
func (c *ClientImpl) SubmitDetails(ctx context.Context, token string, sub *domain.DetailsSubmission) (*domain.EmployeeProfile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":    sub.Name,
		"email":   sub.Email,
		"contact": sub.Contact,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to encode details form: %w", err)
		}
	}
	for _, f := range sub.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to encode upload %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("failed to encode upload %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize details form: %w", err)
	}

	env, err := c.send(ctx, http.MethodPut, "/api/employee/details", token, w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	wire, err := decodeData[wireProfile](env)
	if err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

// ListEmployees implements domain.HRMClient
func (c *ClientImpl) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/admin/employees", token, nil)
	if err != nil {
		return nil, err
	}
	wires, err := decodeData[[]wireEmployee](env)
	if err != nil {
		return nil, err
	}
	employees := make([]domain.Employee, 0, len(*wires))
	for i := range *wires {
		emp, err := (*wires)[i].toDirectory()
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	return employees, nil
}

// CreateEmployee implements domain.HRMClient
func (c *ClientImpl) CreateEmployee(ctx context.Context, token, email string, role domain.Role) (*domain.CreatedEmployee, error) {
	payload := map[string]string{"email": email, "role": string(role)}
	env, err := c.do(ctx, http.MethodPost, "/api/admin/create-employee", token, payload)
	if err != nil {
		return nil, err
	}
	created, err := decodeData[domain.CreatedEmployee](env)
	if err != nil {
		return nil, err
	}
	if created.EmployeeID == "" {
		return nil, fmt.Errorf("%w: create-employee response without employeeId", domain.ErrUpstreamDecode)
	}
	return created, nil
}

// EmployeeDetail implements domain.HRMClient
func (c *ClientImpl) EmployeeDetail(ctx context.Context, token, employeeID string) (*domain.EmployeeDetail, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/admin/employee/"+url.PathEscape(employeeID), token, nil)
	if err != nil {
		return nil, err
	}
	wire, err := decodeData[wireDetail](env)
	if err != nil {
		return nil, err
	}
	emp, err := wire.toDirectory()
	if err != nil {
		return nil, err
	}
	detail := &domain.EmployeeDetail{Employee: *emp}
	if wire.Profile != nil {
		detail.Profile = wire.Profile.toDomain()
	}
	return detail, nil
}

// VerifyEmployee implements domain.HRMClient
func (c *ClientImpl) VerifyEmployee(ctx context.Context, token, employeeID string, status domain.VerificationStatus) error {
	payload := map[string]string{"status": string(status)}
	_, err := c.do(ctx, http.MethodPut, "/api/admin/employee/"+url.PathEscape(employeeID)+"/verify", token, payload)
	return err
}

// ToggleEmployeeStatus implements domain.HRMClient
func (c *ClientImpl) ToggleEmployeeStatus(ctx context.Context, token, employeeID string, isActive bool) error {
	payload := map[string]bool{"isActive": isActive}
	_, err := c.do(ctx, http.MethodPut, "/api/admin/employee/"+url.PathEscape(employeeID)+"/toggle-status", token, payload)
	return err
}

// MarkAttendance implements domain.HRMClient
func (c *ClientImpl) MarkAttendance(ctx context.Context, token string, mark *domain.AttendanceMark) error {
	_, err := c.do(ctx, http.MethodPost, "/api/attendance/mark", token, mark)
	return err
}

// MyAttendance implements domain.HRMClient
func (c *ClientImpl) MyAttendance(ctx context.Context, token, month string) ([]domain.AttendanceRecord, error) {
	path := "/api/attendance/my-attendance"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	records, err := decodeData[[]domain.AttendanceRecord](env)
	if err != nil {
		return nil, err
	}
	return *records, nil
}

// AttendanceSummary implements domain.HRMClient
func (c *ClientImpl) AttendanceSummary(ctx context.Context, token, month string) (*domain.AttendanceSummary, error) {
	path := "/api/attendance/summary"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[domain.AttendanceSummary](env)
}

// LeaveBalance implements domain.HRMClient
func (c *ClientImpl) LeaveBalance(ctx context.Context, token string) (*domain.LeaveBalance, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/leave/balance", token, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[domain.LeaveBalance](env)
}

// RequestLeave implements domain.HRMClient
func (c *ClientImpl) RequestLeave(ctx context.Context, token string, app *domain.LeaveApplication) (*domain.LeaveRequest, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/leave/request", token, app)
	if err != nil {
		return nil, err
	}
	wire, err := decodeData[wireLeave](env)
	if err != nil {
		return nil, err
	}
	req := wire.toDomain()
	return &req, nil
}

// MyLeaves implements domain.HRMClient
func (c *ClientImpl) MyLeaves(ctx context.Context, token string) ([]domain.LeaveRequest, error) {
	return c.leaveList(ctx, token, "/api/leave/my")
}

// AllLeaves implements domain.HRMClient
func (c *ClientImpl) AllLeaves(ctx context.Context, token string) ([]domain.LeaveRequest, error) {
	return c.leaveList(ctx, token, "/api/leave/admin/all")
}

func (c *ClientImpl) leaveList(ctx context.Context, token, path string) ([]domain.LeaveRequest, error) {
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	wires, err := decodeData[[]wireLeave](env)
	if err != nil {
		return nil, err
	}
	leaves := make([]domain.LeaveRequest, 0, len(*wires))
	for i := range *wires {
		leaves = append(leaves, (*wires)[i].toDomain())
	}
	return leaves, nil
}

// CancelLeaveRequest implements domain.HRMClient
func (c *ClientImpl) CancelLeaveRequest(ctx context.Context, token, leaveID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/leave/"+url.PathEscape(leaveID)+"/cancel-request", token, nil)
	return err
}

// ActionLeave implements domain.HRMClient
func (c *ClientImpl) ActionLeave(ctx context.Context, token, leaveID string, action domain.LeaveAction, comment string) error {
	payload := map[string]string{"action": string(action)}
	if comment != "" {
		payload["comment"] = comment
	}
	_, err := c.do(ctx, http.MethodPut, "/api/leave/admin/"+url.PathEscape(leaveID)+"/action", token, payload)
	return err
}

// CancelApprove implements domain.HRMClient
func (c *ClientImpl) CancelApprove(ctx context.Context, token, leaveID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/leave/admin/"+url.PathEscape(leaveID)+"/cancel-approve", token, nil)
	return err
}
