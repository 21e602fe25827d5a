package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
)

// Context keys set by the session middleware.
const (
	ctxSessionKey   = "session"
	ctxSessionIDKey = "session_id"
)

// SessionMW restores the server-side session addressed by the signed
// browser cookie and attaches the snapshot to the request context.
// Restoration completes before any handler runs, so no protected
// content is ever produced for a session still being resolved.
type SessionMW struct {
	cookies    domain.CookieService
	sessions   domain.SessionService
	cookieName string
	ttl        time.Duration
	log        *zap.Logger
}

// NewSessionMW creates new session middleware.
func NewSessionMW(cookies domain.CookieService, sessions domain.SessionService, cookieName string, ttl time.Duration, log *zap.Logger) *SessionMW {
	return &SessionMW{
		cookies:    cookies,
		sessions:   sessions,
		cookieName: cookieName,
		ttl:        ttl,
		log:        log,
	}
}

// Attach returns the session restoration middleware.
func (mw *SessionMW) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(mw.cookieName); err == nil {
			if sid, err := mw.cookies.Validate(raw); err == nil {
				sessionID = sid
			}
		}

		// First visit, or a cookie that failed validation: mint a
		// fresh anonymous session.
		if sessionID == "" {
			sessionID = mw.cookies.NewSessionID()
			signed, err := mw.cookies.Issue(sessionID)
			if err != nil {
				mw.log.Error("failed to issue session cookie", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"success": false, "message": "Server error"})
				return
			}
			c.SetCookie(mw.cookieName, signed, int(mw.ttl.Seconds()), "/", "", false, true)
		}

		session, err := mw.sessions.Restore(c.Request.Context(), sessionID)
		if err != nil {
			mw.log.Error("session restore failed",
				zap.String("session_id", sessionID), zap.Error(err))
			session = domain.Anonymous()
		}

		c.Set(ctxSessionIDKey, sessionID)
		c.Set(ctxSessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session snapshot attached to the request.
func SessionFrom(c *gin.Context) *domain.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if s, ok := v.(*domain.Session); ok {
			return s
		}
	}
	return domain.Anonymous()
}

// SessionIDFrom returns the session ID attached to the request.
func SessionIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionIDKey); ok {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	return ""
}

// WantsHTML reports whether the client is a navigating browser rather
// than a JSON consumer; it decides between redirects and status codes.
func WantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
