package audit

import (
	"context"
	"log/slog"

	appaudit "github.com/quizforge/quizforge/internal/application/audit"
)

// SlogSink writes every security event to the structured log. CRITICAL
// events log at Error, HIGH at Warn, the rest at Info.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a SlogSink.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

// Publish implements audit.Sink.
func (s *SlogSink) Publish(ctx context.Context, event appaudit.Event) error {
	attrs := []any{
		slog.String("event_type", string(event.Type)),
		slog.String("severity", string(event.Severity)),
		slog.String("user_id", event.UserID.String()),
		slog.String("session_id", event.SessionID),
		slog.String("client_ip", event.ClientIP),
		slog.String("request_id", event.RequestID),
	}
	for k, v := range event.Details {
		attrs = append(attrs, slog.String("detail_"+k, v))
	}

	switch event.Severity {
	case appaudit.SeverityCritical:
		s.logger.ErrorContext(ctx, "security event", attrs...)
	case appaudit.SeverityHigh:
		s.logger.WarnContext(ctx, "security event", attrs...)
	default:
		s.logger.InfoContext(ctx, "security event", attrs...)
	}
	return nil
}
