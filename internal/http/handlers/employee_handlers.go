package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/http/middleware"
	"github.com/you/hrmportal/internal/services"
)

// maxUploadBytes bounds a single uploaded document.
const maxUploadBytes = 10 << 20

// EmployeeHandlers serves the employee portal: dashboard, profile
// submission, attendance, and leave self-service.
type EmployeeHandlers struct {
	hrm      domain.HRMClient
	sessions domain.SessionService
	audit    domain.AuditLogger
	log      *zap.Logger
}

// NewEmployeeHandlers creates new employee handlers.
func NewEmployeeHandlers(hrm domain.HRMClient, sessions domain.SessionService, audit domain.AuditLogger, log *zap.Logger) *EmployeeHandlers {
	return &EmployeeHandlers{
		hrm:      hrm,
		sessions: sessions,
		audit:    audit,
		log:      log,
	}
}

func (h *EmployeeHandlers) fail(c *gin.Context, err error) {
	failUpstream(c, h.sessions, services.EmployeeLoginRoute, err)
}

// Dashboard returns the session user plus a fresh profile snapshot.
// The profile fetch is best effort; only a 401 tears the session down.
func (h *EmployeeHandlers) Dashboard(c *gin.Context) {
	session := middleware.SessionFrom(c)

	profile, err := h.hrm.MyDetails(c.Request.Context(), session.Token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			h.fail(c, err)
			return
		}
		h.log.Warn("dashboard profile fetch failed",
			zap.String("employee_id", session.User.ID), zap.Error(err))
		profile = session.User.Profile
	}

	respondOK(c, gin.H{
		"user":               session.User,
		"profile":            profile,
		"verificationStatus": session.User.VerificationStatus,
	})
}

// documentFields are the upload parts accepted by the details form.
var documentFields = []string{"photo", "aadhaar", "pan"}

// SubmitDetails forwards the profile form with document uploads to the
// backend. Field validation failures come back inline, per field, for
// the upload form to render next to its inputs.
func (h *EmployeeHandlers) SubmitDetails(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	contact := c.PostForm("contact")

	fieldErrors := make(map[string]string)
	if name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if email == "" {
		fieldErrors["email"] = "Email is required"
	}
	if contact == "" {
		fieldErrors["contact"] = "Contact number is required"
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fieldErrors})
		return
	}

	sub := &domain.DetailsSubmission{Name: name, Email: email, Contact: contact}
	for _, field := range documentFields {
		header, err := c.FormFile(field)
		if err != nil {
			continue // each document is optional on resubmission
		}
		content, err := readUpload(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false,
				"errors": map[string]string{field: "Could not read uploaded file"}})
			return
		}
		sub.Files = append(sub.Files, domain.UploadFile{
			Field:    field,
			Filename: header.Filename,
			Content:  content,
		})
	}

	session := middleware.SessionFrom(c)
	profile, err := h.hrm.SubmitDetails(c.Request.Context(), session.Token, sub)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.DetailsSubmittedEvent, session.User.ID).
			WithMetadata("documents", len(sub.Files)))
	respondOK(c, profile)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > maxUploadBytes {
		return nil, errors.New("upload too large")
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxUploadBytes))
}

// MarkAttendanceRequest represents one day's attendance submission.
// Coordinates come from the browser's geolocation and are mandatory
// for office mode.
type MarkAttendanceRequest struct {
	Date      string   `json:"date" binding:"required"`
	WorkMode  string   `json:"workMode" binding:"required,oneof=WFO WFH"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// MarkAttendance records attendance for a date.
func (h *EmployeeHandlers) MarkAttendance(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Please select a date and work mode")
		return
	}
	if domain.WorkMode(req.WorkMode) == domain.WorkFromOffice &&
		(req.Latitude == nil || req.Longitude == nil) {
		respondMessage(c, http.StatusBadRequest, "Location is required for office attendance")
		return
	}

	session := middleware.SessionFrom(c)
	mark := &domain.AttendanceMark{
		Date:      req.Date,
		WorkMode:  domain.WorkMode(req.WorkMode),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.hrm.MarkAttendance(c.Request.Context(), session.Token, mark); err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.AttendanceMarkedEvent, session.User.ID).
			WithMetadata("date", req.Date).
			WithMetadata("work_mode", req.WorkMode))
	respondOK(c, gin.H{"message": "Attendance marked successfully!"})
}

// MyAttendance lists the employee's attendance, optionally for a month
// (YYYY-MM).
func (h *EmployeeHandlers) MyAttendance(c *gin.Context) {
	records, err := h.hrm.MyAttendance(c.Request.Context(),
		middleware.SessionFrom(c).Token, c.Query("month"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, records)
}

// AttendanceSummary returns the month's aggregate counts.
func (h *EmployeeHandlers) AttendanceSummary(c *gin.Context) {
	summary, err := h.hrm.AttendanceSummary(c.Request.Context(),
		middleware.SessionFrom(c).Token, c.Query("month"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, summary)
}

// LeaveBalance returns the employee's leave accounting.
func (h *EmployeeHandlers) LeaveBalance(c *gin.Context) {
	balance, err := h.hrm.LeaveBalance(c.Request.Context(), middleware.SessionFrom(c).Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, balance)
}

// ApplyLeaveRequest represents a leave application.
type ApplyLeaveRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// ApplyLeave submits a leave request.
func (h *EmployeeHandlers) ApplyLeave(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "From date, to date and reason are required")
		return
	}

	session := middleware.SessionFrom(c)
	app := &domain.LeaveApplication{
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
		Reason:   req.Reason,
	}
	created, err := h.hrm.RequestLeave(c.Request.Context(), session.Token, app)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.LeaveRequestedEvent, session.User.ID).
			WithMetadata("from", req.FromDate).
			WithMetadata("to", req.ToDate))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// MyLeaves lists the employee's own leave requests.
func (h *EmployeeHandlers) MyLeaves(c *gin.Context) {
	leaves, err := h.hrm.MyLeaves(c.Request.Context(), middleware.SessionFrom(c).Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, leaves)
}

// CancelLeave asks for cancellation of an applied leave.
func (h *EmployeeHandlers) CancelLeave(c *gin.Context) {
	session := middleware.SessionFrom(c)
	leaveID := c.Param("id")
	if err := h.hrm.CancelLeaveRequest(c.Request.Context(), session.Token, leaveID); err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.LeaveRequestedEvent, session.User.ID).
			WithMetadata("leave_id", leaveID).
			WithMetadata("action", "CANCEL_REQUEST"))
	respondOK(c, gin.H{"message": "Cancellation requested"})
}
