package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/http/middleware"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failUpstream converts an upstream call failure into a response. A 401
// from the backend invalidates the whole session here, centrally, and
// sends the browser back to the portal's login page.
func failUpstream(c *gin.Context, sessions domain.SessionService, loginRoute string, err error) {
	if errors.Is(err, domain.ErrSessionInvalid) {
		_ = sessions.Invalidate(c.Request.Context(), middleware.SessionIDFrom(c))
		if middleware.WantsHTML(c) {
			c.Redirect(http.StatusSeeOther, loginRoute)
			c.Abort()
			return
		}
		respondMessage(c, http.StatusUnauthorized, domain.UserMessage(err))
		return
	}

	var ue *domain.UpstreamError
	switch {
	case errors.As(err, &ue):
		status := ue.Status
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		respondMessage(c, status, domain.UserMessage(err))
	case errors.Is(err, domain.ErrUpstreamDecode):
		respondMessage(c, http.StatusBadGateway, domain.UserMessage(err))
	default:
		respondMessage(c, http.StatusBadGateway, domain.UserMessage(err))
	}
}
