package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/middleware"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/internal/utils"
)

// AdminAnalyticsHandler serves the platform overview dashboard.
type AdminAnalyticsHandler struct {
	analytics service.AdminAnalyticsService
	audit     service.AuditRecorder
	logger    zerolog.Logger
}

// NewAdminAnalyticsHandler constructs the admin analytics handler.
func NewAdminAnalyticsHandler(analytics service.AdminAnalyticsService, audit service.AuditRecorder, logger zerolog.Logger) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		analytics: analytics,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_analytics_handler").Logger(),
	}
}

// Register attaches admin analytics routes to the given router group.
func (h *AdminAnalyticsHandler) Register(router fiber.Router) {
	router.Get("", middleware.WithAudit(h.overview, h.audit, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionViewAnalytics,
		TargetType: models.AuditTargetSystem,
	}))
}

func (h *AdminAnalyticsHandler) overview(c *fiber.Ctx) error {
	overview, err := h.analytics.Overview(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load analytics overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load analytics overview")
	}

	return utils.SendSuccess(c, "analytics overview", overview)
}
