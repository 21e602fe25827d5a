package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/http/middleware"
	"github.com/you/hrmportal/internal/services"
)

// AuthHandlers handles login, logout and session introspection.
type AuthHandlers struct {
	sessions domain.SessionService
	notifier domain.Notifier
	log      *zap.Logger
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(sessions domain.SessionService, notifier domain.Notifier, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		sessions: sessions,
		notifier: notifier,
		log:      log,
	}
}

// LoginRequest represents a credential submission, as a form post or JSON.
type LoginRequest struct {
	EmployeeID string `json:"employeeId" form:"employeeId" binding:"required"`
	Password   string `json:"password" form:"password" binding:"required"`
}

// AdminLogin handles a login from the admin portal's login page.
func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	h.login(c, domain.RoleAdmin)
}

// EmployeeLogin handles a login from the employee portal's login page.
func (h *AuthHandlers) EmployeeLogin(c *gin.Context) {
	h.login(c, domain.RoleEmployee)
}

// login runs the credential exchange. The portal argument is advisory:
// the backend's role decides where the user actually lands.
func (h *AuthHandlers) login(c *gin.Context, portal domain.Role) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Employee ID and password are required")
		return
	}

	sessionID := middleware.SessionIDFrom(c)
	result, err := h.sessions.Login(c.Request.Context(), sessionID, req.EmployeeID, req.Password, portal)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoginInFlight):
			respondMessage(c, http.StatusConflict, "Login already in progress")
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondMessage(c, http.StatusUnauthorized, domain.UserMessage(err))
		default:
			var ue *domain.UpstreamError
			if errors.As(err, &ue) {
				respondMessage(c, http.StatusUnauthorized, domain.UserMessage(err))
				return
			}
			h.log.Error("login failed", zap.Error(err))
			respondMessage(c, http.StatusBadGateway, domain.UserMessage(err))
		}
		return
	}

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, result.Redirect)
		return
	}
	respondOK(c, gin.H{
		"redirect": result.Redirect,
		"user":     result.Session.User,
	})
}

// Logout clears the session unconditionally and routes to the landing
// page. Safe to call with no active session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := middleware.SessionIDFrom(c)
	if err := h.sessions.Logout(c.Request.Context(), sessionID); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, services.LandingRoute)
		return
	}
	respondOK(c, gin.H{"redirect": services.LandingRoute})
}

// Session reports the current session snapshot and drains pending
// notifications in the same response.
func (h *AuthHandlers) Session(c *gin.Context) {
	session := middleware.SessionFrom(c)
	sessionID := middleware.SessionIDFrom(c)

	flashes, err := h.notifier.Drain(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Warn("failed to drain flashes", zap.Error(err))
		flashes = nil
	}

	var user *domain.User
	if session.Authenticated() {
		user = session.User
	}
	respondOK(c, gin.H{"user": user, "flash": flashes})
}
