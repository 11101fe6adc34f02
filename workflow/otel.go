package workflow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startValidationSpan creates a span for one transition validation.
// Uses the global tracer; exporter wiring is the embedding application's
// concern. The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startValidationSpan(
	ctx context.Context, entityType EntityType, tc *Context,
) (context.Context, trace.Span) {
	tracer := otel.Tracer("workflow")
	ctx, span := tracer.Start(ctx, "workflow.validate_transition")

	span.SetAttributes(attribute.String("entity_type", string(entityType)))

	if tc != nil {
		span.SetAttributes(
			attribute.String("action", string(tc.Action)),
			attribute.String("from", tc.From),
			attribute.String("to", tc.To),
			attribute.String("attempt_id", tc.AttemptID.String()),
			attribute.String("entity_id_hash", hashID(tc.EntityID)),
			attribute.String("tenant_id_hash", hashID(tc.TenantID)),
		)
	}

	return ctx, span
}

// hashID creates a short hash of an ID for span attributes (privacy).
func hashID(id string) string {
	if id == "" {
		return ""
	}

	h := sha256.Sum256([]byte(id))

	return hex.EncodeToString(h[:4]) // First 8 chars
}
