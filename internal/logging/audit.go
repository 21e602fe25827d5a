package logging

import (
	"context"

	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
)

// ZapAuditLogger implements domain.AuditLogger on top of a zap logger.
type ZapAuditLogger struct {
	log *zap.Logger
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(log *zap.Logger) domain.AuditLogger {
	return &ZapAuditLogger{log: log.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (a *ZapAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Bool("success", event.Success),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.EmployeeID != "" {
		fields = append(fields, zap.String("employee_id", event.EmployeeID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.SessionID != "" {
		fields = append(fields, zap.String("session_id", event.SessionID))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}

	if event.Success {
		a.log.Info(string(event.EventType), fields...)
	} else {
		a.log.Warn(string(event.EventType), fields...)
	}
}
