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

// AdminLogHandler exposes the audit trail to administrators. Reading the
// trail is itself an audited action.
type AdminLogHandler struct {
	logs   service.AuditService
	logger zerolog.Logger
}

// NewAdminLogHandler constructs the admin log handler.
func NewAdminLogHandler(logs service.AuditService, logger zerolog.Logger) *AdminLogHandler {
	return &AdminLogHandler{
		logs:   logs,
		logger: logger.With().Str("component", "admin_log_handler").Logger(),
	}
}

// Register attaches admin log routes to the given router group.
func (h *AdminLogHandler) Register(router fiber.Router) {
	router.Get("", middleware.WithAudit(h.list, h.logs, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionViewLogs,
		TargetType: models.AuditTargetSystem,
		Details: func(c *fiber.Ctx) map[string]interface{} {
			details := map[string]interface{}{}
			if action := c.Query("action"); action != "" {
				details["action"] = fiberutils.CopyString(action)
			}
			if targetType := c.Query("target_type"); targetType != "" {
				details["target_type"] = fiberutils.CopyString(targetType)
			}
			if len(details) == 0 {
				return nil
			}
			return details
		},
	}))
}

func (h *AdminLogHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}
	adminID, err := parseQueryInt(c, "admin_id")
	if err != nil || adminID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin_id")
	}

	req := dto.AdminLogListRequest{
		Page:       page,
		PageSize:   pageSize,
		AdminID:    uint(adminID),
		Action:     c.Query("action"),
		TargetType: c.Query("target_type"),
	}

	logs, err := h.logs.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit entries")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list audit entries")
	}

	return utils.SendSuccess(c, "audit entries listed", logs)
}
