package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/internal/config"
	httpx "github.com/you/hrmportal/internal/http"
	"github.com/you/hrmportal/internal/http/handlers"
	"github.com/you/hrmportal/internal/http/middleware"
)

func Run(cfg *config.Config, log *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}
	seedPolicies(c, log)

	authH := handlers.NewAuthHandlers(c.SessionSvc, c.Notifier, log)
	adminH := handlers.NewAdminHandlers(c.HRMClient, c.SessionSvc, c.Exporter, c.Audit, log)
	employeeH := handlers.NewEmployeeHandlers(c.HRMClient, c.SessionSvc, c.Audit, log)

	sessionMW := middleware.NewSessionMW(c.CookieSvc, c.SessionSvc, cfg.CookieName, cfg.SessionTTL, log)
	adminGuard := middleware.NewAdminGuard(c.PolicySvc, c.Audit, log)
	employeeGuard := middleware.NewEmployeeGuard(c.PolicySvc, c.Audit, log)

	r := httpx.BuildRouter(authH, adminH, employeeH, sessionMW, adminGuard, employeeGuard)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default portal route policies on an empty
// policy file.
func seedPolicies(c *Container, log *zap.Logger) {
	if len(c.PolicySvc.GetPolicies()) > 0 {
		return
	}
	_ = c.PolicySvc.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	_ = c.PolicySvc.AddPolicy("role_employee", "/employee/*", "(GET|POST|PUT)")
	log.Info("casbin: seeded default policies")
}
