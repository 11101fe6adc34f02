package workflow

import (
	"context"
	"log/slog"
)

// Logger provides logging hooks for workflow evaluation.
type Logger interface {
	TransitionChecked(ctx context.Context, entityType EntityType, from, to string, action Action, allowed bool)
	ValidationEvaluated(ctx context.Context, tc *Context, result Result)
}

// DefaultLogger implements Logger using slog. Routine checks log at Debug;
// denials and failed validations log at Info so they stand out without
// drowning the log in every UI render of an action menu.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default().
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{logger: slog.Default()}
}

// NewLoggerWith creates a logger backed by the given slog logger.
func NewLoggerWith(logger *slog.Logger) *DefaultLogger {
	return &DefaultLogger{logger: logger}
}

func (l *DefaultLogger) TransitionChecked(
	ctx context.Context, entityType EntityType, from, to string, action Action, allowed bool,
) {
	fields := []any{
		"entity_type", entityType,
		"from", from,
		"to", to,
		"action", action,
		"allowed", allowed,
	}

	if allowed {
		l.logger.DebugContext(ctx, "Transition check", fields...)
	} else {
		l.logger.InfoContext(ctx, "Transition denied", fields...)
	}
}

func (l *DefaultLogger) ValidationEvaluated(ctx context.Context, tc *Context, result Result) {
	fields := []any{
		"entity_type", tc.EntityType,
		"entity_id", tc.EntityID,
		"attempt_id", tc.AttemptID.String(),
		"actor_id", tc.ActorID,
		"tenant_id", tc.TenantID,
		"from", tc.From,
		"to", tc.To,
		"action", tc.Action,
		"valid", result.Valid,
	}

	if result.Valid {
		l.logger.DebugContext(ctx, "Transition validated", fields...)
	} else {
		l.logger.InfoContext(ctx, "Transition validation failed",
			append(fields, "errors", result.Errors)...)
	}
}
