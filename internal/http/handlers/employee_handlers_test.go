package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/mocks"
)

type employeeFixture struct {
	hrm      *mocks.MockHRMClient
	sessions *mocks.MockSessionService
	audit    *mocks.MockAuditLogger
	router   *gin.Engine
}

func newEmployeeFixture(t *testing.T) *employeeFixture {
	t.Helper()

	f := &employeeFixture{
		hrm:      mocks.NewMockHRMClient(),
		sessions: mocks.NewMockSessionService(),
		audit:    mocks.NewMockAuditLogger(),
	}
	h := NewEmployeeHandlers(f.hrm, f.sessions, f.audit, zap.NewNop())

	session := &domain.Session{
		User: &domain.User{
			ID:                 "EMP042",
			Name:               "Asha",
			Role:               domain.RoleEmployee,
			VerificationStatus: domain.VerificationApproved,
		},
		Token: "tok_emp",
	}

	r := gin.New()
	r.Use(injectSession(session))
	r.GET("/employee/dashboard", h.Dashboard)
	r.PUT("/employee/details", h.SubmitDetails)
	r.POST("/employee/attendance", h.MarkAttendance)
	r.GET("/employee/attendance", h.MyAttendance)
	r.GET("/employee/attendance/summary", h.AttendanceSummary)
	r.GET("/employee/leaves/balance", h.LeaveBalance)
	r.POST("/employee/leaves", h.ApplyLeave)
	r.GET("/employee/leaves", h.MyLeaves)
	r.PUT("/employee/leaves/:id/cancel", h.CancelLeave)
	f.router = r
	return f
}

func (f *employeeFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestEmployeeHandlers_Dashboard(t *testing.T) {
	f := newEmployeeFixture(t)
	f.hrm.MyDetailsFunc = func(ctx context.Context, token string) (*domain.EmployeeProfile, error) {
		if token != "tok_emp" {
			t.Errorf("expected session token, got %q", token)
		}
		return &domain.EmployeeProfile{Name: "Asha", Phone: "9999999999"}, nil
	}

	w := f.do(http.MethodGet, "/employee/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data struct {
			User               *domain.User            `json:"user"`
			Profile            *domain.EmployeeProfile `json:"profile"`
			VerificationStatus string                  `json:"verificationStatus"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Profile == nil || body.Data.Profile.Phone != "9999999999" {
		t.Errorf("expected fresh profile, got %+v", body.Data.Profile)
	}
	if body.Data.VerificationStatus != string(domain.VerificationApproved) {
		t.Errorf("unexpected verification status: %s", body.Data.VerificationStatus)
	}
}

func TestEmployeeHandlers_DashboardSurvivesProfileOutage(t *testing.T) {
	f := newEmployeeFixture(t)
	f.hrm.MyDetailsFunc = func(ctx context.Context, token string) (*domain.EmployeeProfile, error) {
		return nil, domain.ErrUpstreamUnavailable
	}

	// The page still renders from the session snapshot
	w := f.do(http.MethodGet, "/employee/dashboard", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 despite profile outage, got %d", w.Code)
	}
	if len(f.sessions.Invalidated) != 0 {
		t.Error("expected session to survive a transient outage")
	}
}

func TestEmployeeHandlers_DashboardTearsDownOn401(t *testing.T) {
	f := newEmployeeFixture(t)
	f.hrm.MyDetailsFunc = func(ctx context.Context, token string) (*domain.EmployeeProfile, error) {
		return nil, domain.ErrSessionInvalid
	}

	w := f.do(http.MethodGet, "/employee/dashboard", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for JSON request, got %d", w.Code)
	}
	if len(f.sessions.Invalidated) != 1 {
		t.Errorf("expected session invalidation, got %v", f.sessions.Invalidated)
	}
}

func detailsForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("failed to build form: %v", err)
		}
	}
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".png")
		if err != nil {
			t.Fatalf("failed to build form file: %v", err)
		}
		part.Write(content)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestEmployeeHandlers_SubmitDetails(t *testing.T) {
	f := newEmployeeFixture(t)
	f.hrm.SubmitDetailsFunc = func(ctx context.Context, token string, sub *domain.DetailsSubmission) (*domain.EmployeeProfile, error) {
		if sub.Name != "Asha" || sub.Contact != "9999999999" {
			t.Errorf("unexpected submission: %+v", sub)
		}
		if len(sub.Files) != 2 {
			t.Errorf("expected 2 uploads, got %d", len(sub.Files))
		}
		return &domain.EmployeeProfile{Name: sub.Name, Email: sub.Email, Phone: sub.Contact}, nil
	}

	body, contentType := detailsForm(t,
		map[string]string{"name": "Asha", "email": "asha@example.com", "contact": "9999999999"},
		map[string][]byte{"photo": []byte("png"), "aadhaar": []byte("pdf")})

	req := httptest.NewRequest(http.MethodPut, "/employee/details", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !f.audit.HasEvent(domain.DetailsSubmittedEvent) {
		t.Error("expected submission audit event")
	}
}

func TestEmployeeHandlers_SubmitDetailsFieldErrors(t *testing.T) {
	f := newEmployeeFixture(t)
	hrmCalled := false
	f.hrm.SubmitDetailsFunc = func(ctx context.Context, token string, sub *domain.DetailsSubmission) (*domain.EmployeeProfile, error) {
		hrmCalled = true
		return nil, nil
	}

	body, contentType := detailsForm(t, map[string]string{"name": "Asha"}, nil)
	req := httptest.NewRequest(http.MethodPut, "/employee/details", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if hrmCalled {
		t.Error("expected validation to reject before the backend call")
	}

	// Errors come back per field for the form to render inline
	var resp struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Errors["email"] == "" || resp.Errors["contact"] == "" {
		t.Errorf("expected inline field errors, got %+v", resp.Errors)
	}
	if resp.Errors["name"] != "" {
		t.Errorf("expected no error for the provided field, got %+v", resp.Errors)
	}
}

func TestEmployeeHandlers_MarkAttendance(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCall   bool
	}{
		{
			name:       "work from home needs no location",
			body:       `{"date":"2026-08-29","workMode":"WFH"}`,
			wantStatus: http.StatusOK,
			wantCall:   true,
		},
		{
			name:       "office with coordinates",
			body:       `{"date":"2026-08-29","workMode":"WFO","latitude":12.97,"longitude":77.59}`,
			wantStatus: http.StatusOK,
			wantCall:   true,
		},
		{
			name:       "office without coordinates",
			body:       `{"date":"2026-08-29","workMode":"WFO"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown work mode",
			body:       `{"date":"2026-08-29","workMode":"REMOTE"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing date",
			body:       `{"workMode":"WFH"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEmployeeFixture(t)
			called := false
			f.hrm.MarkAttendanceFunc = func(ctx context.Context, token string, mark *domain.AttendanceMark) error {
				called = true
				return nil
			}

			w := f.do(http.MethodPost, "/employee/attendance", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if called != tt.wantCall {
				t.Errorf("expected backend call=%t, got %t", tt.wantCall, called)
			}

			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data struct {
						Message string `json:"message"`
					} `json:"data"`
				}
				json.Unmarshal(w.Body.Bytes(), &body)
				if body.Data.Message != "Attendance marked successfully!" {
					t.Errorf("unexpected message: %q", body.Data.Message)
				}
			}
		})
	}
}

func TestEmployeeHandlers_MarkAttendanceOfficeLocationMessage(t *testing.T) {
	f := newEmployeeFixture(t)

	w := f.do(http.MethodPost, "/employee/attendance", `{"date":"2026-08-29","workMode":"WFO"}`)

	var body struct {
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Message != "Location is required for office attendance" {
		t.Errorf("unexpected message: %q", body.Message)
	}
}

func TestEmployeeHandlers_AttendanceMonthPassthrough(t *testing.T) {
	f := newEmployeeFixture(t)
	var gotMonth string
	f.hrm.MyAttendanceFunc = func(ctx context.Context, token, month string) ([]domain.AttendanceRecord, error) {
		gotMonth = month
		return []domain.AttendanceRecord{{Date: "2026-08-01", WorkMode: domain.WorkFromOffice}}, nil
	}

	w := f.do(http.MethodGet, "/employee/attendance?month=2026-08", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotMonth != "2026-08" {
		t.Errorf("expected month filter forwarded, got %q", gotMonth)
	}
}

func TestEmployeeHandlers_ApplyLeave(t *testing.T) {
	f := newEmployeeFixture(t)
	f.hrm.RequestLeaveFunc = func(ctx context.Context, token string, app *domain.LeaveApplication) (*domain.LeaveRequest, error) {
		return &domain.LeaveRequest{
			ID:       "66f0a",
			FromDate: app.FromDate,
			ToDate:   app.ToDate,
			Reason:   app.Reason,
			Status:   domain.LeavePending,
		}, nil
	}

	w := f.do(http.MethodPost, "/employee/leaves", `{"fromDate":"2026-09-01","toDate":"2026-09-03","reason":"Family function"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data domain.LeaveRequest `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Status != domain.LeavePending {
		t.Errorf("expected pending request, got %+v", body.Data)
	}
	if !f.audit.HasEvent(domain.LeaveRequestedEvent) {
		t.Error("expected leave request audit event")
	}

	w = f.do(http.MethodPost, "/employee/leaves", `{"fromDate":"2026-09-01"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for incomplete application, got %d", w.Code)
	}
}

func TestEmployeeHandlers_CancelLeave(t *testing.T) {
	f := newEmployeeFixture(t)
	var gotID string
	f.hrm.CancelLeaveRequestFunc = func(ctx context.Context, token, leaveID string) error {
		gotID = leaveID
		return nil
	}

	w := f.do(http.MethodPut, "/employee/leaves/66f0a/cancel", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != "66f0a" {
		t.Errorf("expected cancellation of 66f0a, got %q", gotID)
	}
}

func TestEmployeeHandlers_LeaveBalance(t *testing.T) {
	f := newEmployeeFixture(t)
	f.hrm.LeaveBalanceFunc = func(ctx context.Context, token string) (*domain.LeaveBalance, error) {
		return &domain.LeaveBalance{TotalLeaves: 24, UsedLeaves: 5.5, AvailableLeaves: 18.5}, nil
	}

	w := f.do(http.MethodGet, "/employee/leaves/balance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data domain.LeaveBalance `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.AvailableLeaves != 18.5 {
		t.Errorf("unexpected balance: %+v", body.Data)
	}
}
