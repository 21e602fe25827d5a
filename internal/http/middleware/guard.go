package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/services"
)

// PortalGuard gates an entire portal subtree on session state. The
// portal's login route is registered outside the guarded group, so the
// exemption and the redirect target cannot drift apart.
type PortalGuard struct {
	portal     domain.Role
	loginRoute string
	homeRoute  string
	policy     domain.PolicyService
	audit      domain.AuditLogger
	log        *zap.Logger
}

// NewAdminGuard guards the administrator portal.
func NewAdminGuard(policy domain.PolicyService, audit domain.AuditLogger, log *zap.Logger) *PortalGuard {
	return &PortalGuard{
		portal:     domain.RoleAdmin,
		loginRoute: services.AdminLoginRoute,
		homeRoute:  services.AdminHomeRoute,
		policy:     policy,
		audit:      audit,
		log:        log,
	}
}

// NewEmployeeGuard guards the employee portal.
func NewEmployeeGuard(policy domain.PolicyService, audit domain.AuditLogger, log *zap.Logger) *PortalGuard {
	return &PortalGuard{
		portal:     domain.RoleEmployee,
		loginRoute: services.EmployeeLoginRoute,
		homeRoute:  services.EmployeeHomeRoute,
		policy:     policy,
		audit:      audit,
		log:        log,
	}
}

// verificationExempt lists the employee routes an unverified employee
// may still reach: the dashboard and the document submission form.
func verificationExempt(path string) bool {
	return path == services.EmployeeHomeRoute || path == "/employee/details"
}

// Guard returns the portal authorization middleware.
func (g *PortalGuard) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)

		// Anonymous, or a user from the other portal: back to this
		// portal's login page. Nothing below the guard is produced.
		if !session.Authenticated() || session.User.Role != g.portal {
			event := domain.NewAuditEvent(domain.AccessDeniedEvent, "").
				WithSession(SessionIDFrom(c)).
				WithMetadata("path", c.Request.URL.Path)
			if session.Authenticated() {
				event.EmployeeID = session.User.ID
			}
			g.audit.LogEvent(c.Request.Context(), event.WithError(domain.ErrUnauthorized))
			g.deny(c, g.loginRoute, http.StatusUnauthorized, "Unauthorized")
			return
		}

		allowed, err := g.policy.CheckPermission(
			services.SubjectFor(session.User.Role), c.Request.URL.Path, c.Request.Method)
		if err != nil {
			g.log.Error("authorization check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"success": false, "message": "Authorization check failed"})
			return
		}
		if !allowed {
			g.audit.LogEvent(c.Request.Context(),
				domain.NewAuditEvent(domain.AccessDeniedEvent, session.User.ID).
					WithSession(SessionIDFrom(c)).
					WithMetadata("path", c.Request.URL.Path).
					WithError(domain.ErrInsufficientRole))
			g.deny(c, g.homeRoute, http.StatusForbidden, "Access Denied")
			return
		}

		// Secondary gate: an employee whose documents are not yet
		// approved is confined to the dashboard and the submission form.
		if g.portal == domain.RoleEmployee && !session.User.Verified() &&
			!verificationExempt(c.Request.URL.Path) {
			g.deny(c, g.homeRoute, http.StatusForbidden, "Verification pending")
			return
		}

		c.Next()
	}
}

func (g *PortalGuard) deny(c *gin.Context, target string, status int, message string) {
	if WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
