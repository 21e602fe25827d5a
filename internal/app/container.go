package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/config"
	"github.com/you/hrmportal/internal/infrastructure/auth"
	"github.com/you/hrmportal/internal/infrastructure/database"
	"github.com/you/hrmportal/internal/infrastructure/notifications"
	"github.com/you/hrmportal/internal/infrastructure/repositories"
	"github.com/you/hrmportal/internal/infrastructure/upstream"
	"github.com/you/hrmportal/internal/logging"
	"github.com/you/hrmportal/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    *zap.Logger

	// Infrastructure
	RedisClient *redis.Client
	HRMClient   domain.HRMClient

	// Session plumbing
	Store     domain.SessionStore
	CookieSvc domain.CookieService
	Notifier  domain.Notifier
	Audit     domain.AuditLogger

	// Services
	SessionSvc domain.SessionService
	PolicySvc  domain.PolicyService
	Exporter   domain.DirectoryExporter
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	c.HRMClient = upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)

	c.Store = repositories.NewSessionStore(c.RedisClient, cfg.SessionTTL, log)
	c.CookieSvc = auth.NewCookieService(cfg.CookieSecret, cfg.CookieIssuer, cfg.SessionTTL)
	c.Notifier = notifications.NewFlashNotifier(c.RedisClient, cfg.SessionTTL)
	c.Audit = logging.NewAuditLogger(log)

	cas, err := auth.NewCasbinService(cfg.CasbinModelPath, cfg.CasbinPolicyPath)
	if err != nil {
		return nil, err
	}
	c.PolicySvc = services.NewPolicyService(cas.E)

	c.SessionSvc = services.NewSessionManager(c.Store, c.HRMClient, c.Notifier, c.Audit, log)
	c.Exporter = services.NewDirectoryExporter()

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
