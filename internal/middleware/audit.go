package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/observability"
	"github.com/studioflow/tutorly-api/internal/service"
)

// AuditOptions configures WithAudit for a single administrative action.
type AuditOptions struct {
	// Action is the fixed audit tag recorded for this route.
	Action string
	// TargetType classifies the affected entity (user, subscription, document, agent, system).
	TargetType string
	// TargetID extracts the affected entity identifier from the inbound
	// request. Leave nil for actions without a single target.
	TargetID func(c *fiber.Ctx) *string
	// Details extracts an action-specific payload from the inbound request.
	Details func(c *fiber.Ctx) map[string]interface{}
}

// WithAudit wraps an administrative handler so that exactly one audit entry is
// persisted after the handler completes with a 2xx status, and only when the
// caller is a verified administrator. The wrapped response is never altered.
//
// The audit write runs on a detached goroutine with a fresh context: it must
// not block the request path, and its failure must never reach the client.
// Everything the goroutine needs is captured before it starts, because the
// fiber context is recycled once the handler chain returns.
func WithAudit(handler fiber.Handler, recorder service.AuditRecorder, logger zerolog.Logger, opts AuditOptions) fiber.Handler {
	auditLogger := logger.With().Str("component", "audit").Str("action", opts.Action).Logger()

	return func(c *fiber.Ctx) error {
		adminID := auditAdminID(c)
		if adminID == 0 || normalizeRoleValue(c.Locals("user_role")) != "admin" {
			return handler(c)
		}

		// Extract target and details eagerly so they reflect the request as
		// received, not any state the handler mutates.
		var targetID *string
		if opts.TargetID != nil {
			targetID = opts.TargetID(c)
		}
		var details map[string]interface{}
		if opts.Details != nil {
			details = opts.Details(c)
		}

		if err := handler(c); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			observability.AuditSkipped().WithLabelValues(opts.Action).Inc()
			return nil
		}

		entry := service.AuditEntry{
			AdminID:    adminID,
			Action:     opts.Action,
			TargetType: opts.TargetType,
			TargetID:   targetID,
			Details:    details,
		}
		ctx := ContextWithCorrelation(context.Background(), GetCorrelationID(c))

		go func() {
			if _, err := recorder.Record(ctx, entry); err != nil {
				observability.AuditFailures().WithLabelValues(opts.Action).Inc()
				auditLogger.Error().Err(err).
					Uint("admin_id", entry.AdminID).
					Str("target_type", entry.TargetType).
					Msg("failed to persist audit entry")
				return
			}
			observability.AuditEntries().WithLabelValues(opts.Action).Inc()
		}()

		return nil
	}
}

func auditAdminID(c *fiber.Ctx) uint {
	if value := c.Locals("user_id"); value != nil {
		if id, err := normalizeUserID(value); err == nil {
			return id
		}
	}
	return 0
}
