package handler

import (
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/middleware"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/internal/utils"
)

// AdminSubscriptionHandler serves the read-only billing mirror.
type AdminSubscriptionHandler struct {
	subscriptions service.AdminSubscriptionService
	audit         service.AuditRecorder
	logger        zerolog.Logger
}

// NewAdminSubscriptionHandler constructs the admin subscription handler.
func NewAdminSubscriptionHandler(subscriptions service.AdminSubscriptionService, audit service.AuditRecorder, logger zerolog.Logger) *AdminSubscriptionHandler {
	return &AdminSubscriptionHandler{
		subscriptions: subscriptions,
		audit:         audit,
		logger:        logger.With().Str("component", "admin_subscription_handler").Logger(),
	}
}

// Register attaches admin subscription routes to the given router group.
func (h *AdminSubscriptionHandler) Register(router fiber.Router) {
	router.Get("", middleware.WithAudit(h.list, h.audit, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionViewSubscriptions,
		TargetType: models.AuditTargetSubscription,
		Details: func(c *fiber.Ctx) map[string]interface{} {
			if status := c.Query("status"); status != "" {
				return map[string]interface{}{"status": fiberutils.CopyString(status)}
			}
			return nil
		},
	}))
}

func (h *AdminSubscriptionHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	req := dto.AdminSubscriptionListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}

	subscriptions, err := h.subscriptions.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list subscriptions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list subscriptions")
	}

	return utils.SendSuccess(c, "subscriptions listed", subscriptions)
}
