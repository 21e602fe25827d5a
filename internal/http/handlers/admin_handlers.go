package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/http/middleware"
	"github.com/you/hrmportal/internal/services"
)

// AdminHandlers serves the administrator portal: directory management,
// verification, and the leave approval workflow.
type AdminHandlers struct {
	hrm      domain.HRMClient
	sessions domain.SessionService
	exporter domain.DirectoryExporter
	audit    domain.AuditLogger
	log      *zap.Logger
}

// NewAdminHandlers creates new admin handlers.
func NewAdminHandlers(hrm domain.HRMClient, sessions domain.SessionService, exporter domain.DirectoryExporter, audit domain.AuditLogger, log *zap.Logger) *AdminHandlers {
	return &AdminHandlers{
		hrm:      hrm,
		sessions: sessions,
		exporter: exporter,
		audit:    audit,
		log:      log,
	}
}

func (h *AdminHandlers) fail(c *gin.Context, err error) {
	failUpstream(c, h.sessions, services.AdminLoginRoute, err)
}

// Dashboard aggregates directory and leave counts for the admin landing
// view.
func (h *AdminHandlers) Dashboard(c *gin.Context) {
	token := middleware.SessionFrom(c).Token

	employees, err := h.hrm.ListEmployees(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	leaves, err := h.hrm.AllLeaves(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}

	active, pendingVerification := 0, 0
	for _, emp := range employees {
		if emp.IsActive {
			active++
		}
		if emp.VerificationStatus == domain.VerificationPending {
			pendingVerification++
		}
	}
	pendingLeaves := 0
	for _, lr := range leaves {
		if lr.Status == domain.LeavePending || lr.Status == domain.LeaveCancelRequested {
			pendingLeaves++
		}
	}

	respondOK(c, gin.H{
		"totalEmployees":      len(employees),
		"activeEmployees":     active,
		"pendingVerification": pendingVerification,
		"pendingLeaves":       pendingLeaves,
	})
}

// ListEmployees returns the full directory.
func (h *AdminHandlers) ListEmployees(c *gin.Context) {
	employees, err := h.hrm.ListEmployees(c.Request.Context(), middleware.SessionFrom(c).Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, employees)
}

// CreateEmployeeRequest represents an account provisioning request.
type CreateEmployeeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`
}

// CreateEmployee provisions an account; the response carries the
// generated ID and the one-time temporary password.
func (h *AdminHandlers) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	session := middleware.SessionFrom(c)
	created, err := h.hrm.CreateEmployee(c.Request.Context(), session.Token, req.Email, domain.Role(req.Role))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.EmployeeCreatedEvent, session.User.ID).
			WithEmail(req.Email).
			WithMetadata("created_id", created.EmployeeID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// ExportEmployees streams the directory as an xlsx attachment.
func (h *AdminHandlers) ExportEmployees(c *gin.Context) {
	employees, err := h.hrm.ListEmployees(c.Request.Context(), middleware.SessionFrom(c).Token)
	if err != nil {
		h.fail(c, err)
		return
	}

	workbook, err := h.exporter.EmployeeWorkbook(employees)
	if err != nil {
		h.log.Error("directory export failed", zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, "Export failed")
		return
	}

	filename := fmt.Sprintf("employees-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// EmployeeDetail returns one employee's full record.
func (h *AdminHandlers) EmployeeDetail(c *gin.Context) {
	detail, err := h.hrm.EmployeeDetail(c.Request.Context(), middleware.SessionFrom(c).Token, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, detail)
}

// VerifyEmployeeRequest represents a verification decision.
type VerifyEmployeeRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// VerifyEmployee sets an employee's verification status. The change
// surfaces in the employee's session on their next restore.
func (h *AdminHandlers) VerifyEmployee(c *gin.Context) {
	var req VerifyEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	session := middleware.SessionFrom(c)
	employeeID := c.Param("id")
	if err := h.hrm.VerifyEmployee(c.Request.Context(), session.Token, employeeID, domain.VerificationStatus(req.Status)); err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.EmployeeVerifiedEvent, session.User.ID).
			WithMetadata("employee_id", employeeID).
			WithMetadata("status", req.Status))
	respondOK(c, gin.H{"message": "Verification status updated"})
}

// ToggleStatusRequest represents an active/inactive flip.
type ToggleStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ToggleEmployeeStatus flips an employee's active flag and returns the
// refreshed directory, so the caller re-renders from backend truth
// rather than a local guess.
func (h *AdminHandlers) ToggleEmployeeStatus(c *gin.Context) {
	var req ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	session := middleware.SessionFrom(c)
	employeeID := c.Param("id")
	if err := h.hrm.ToggleEmployeeStatus(c.Request.Context(), session.Token, employeeID, *req.IsActive); err != nil {
		h.fail(c, err)
		return
	}

	employees, err := h.hrm.ListEmployees(c.Request.Context(), session.Token)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.EmployeeStatusToggledEvent, session.User.ID).
			WithMetadata("employee_id", employeeID).
			WithMetadata("is_active", *req.IsActive))
	respondOK(c, employees)
}

// ListLeaves returns every employee's leave requests.
func (h *AdminHandlers) ListLeaves(c *gin.Context) {
	leaves, err := h.hrm.AllLeaves(c.Request.Context(), middleware.SessionFrom(c).Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, leaves)
}

// LeaveActionRequest represents an approve/reject decision.
type LeaveActionRequest struct {
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment string `json:"comment"`
}

// ActionLeave decides a pending leave request.
func (h *AdminHandlers) ActionLeave(c *gin.Context) {
	var req LeaveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	session := middleware.SessionFrom(c)
	leaveID := c.Param("id")
	if err := h.hrm.ActionLeave(c.Request.Context(), session.Token, leaveID, domain.LeaveAction(req.Action), req.Comment); err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.LeaveActionedEvent, session.User.ID).
			WithMetadata("leave_id", leaveID).
			WithMetadata("action", req.Action))
	respondOK(c, gin.H{"message": "Leave request updated"})
}

// CancelApprove approves an employee's cancellation request.
func (h *AdminHandlers) CancelApprove(c *gin.Context) {
	session := middleware.SessionFrom(c)
	leaveID := c.Param("id")
	if err := h.hrm.CancelApprove(c.Request.Context(), session.Token, leaveID); err != nil {
		h.fail(c, err)
		return
	}

	h.audit.LogEvent(c.Request.Context(),
		domain.NewAuditEvent(domain.LeaveActionedEvent, session.User.ID).
			WithMetadata("leave_id", leaveID).
			WithMetadata("action", "CANCEL_APPROVE"))
	respondOK(c, gin.H{"message": "Leave cancellation approved"})
}
