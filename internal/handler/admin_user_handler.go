package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/middleware"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/internal/utils"
)

// AdminUserHandler exposes account management endpoints for administrators.
type AdminUserHandler struct {
	users  service.AdminUserService
	audit  service.AuditRecorder
	logger zerolog.Logger
}

// NewAdminUserHandler constructs the admin user handler.
func NewAdminUserHandler(users service.AdminUserService, audit service.AuditRecorder, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		users:  users,
		audit:  audit,
		logger: logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches admin user routes to the given router group. Every route
// is wrapped so a successful call leaves one audit entry.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", middleware.WithAudit(h.list, h.audit, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionViewUsers,
		TargetType: models.AuditTargetUser,
		Details: func(c *fiber.Ctx) map[string]interface{} {
			if search := c.Query("search"); search != "" {
				return map[string]interface{}{"search": fiberutils.CopyString(search)}
			}
			return nil
		},
	}))
	router.Get("/export", middleware.WithAudit(h.export, h.audit, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionExportData,
		TargetType: models.AuditTargetSystem,
		Details: func(c *fiber.Ctx) map[string]interface{} {
			return map[string]interface{}{"format": "csv", "entity": "users"}
		},
	}))
	router.Post("/:id/minutes", middleware.WithAudit(h.addMinutes, h.audit, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionAddMinutes,
		TargetType: models.AuditTargetUser,
		TargetID:   paramsTargetID("id"),
		Details: func(c *fiber.Ctx) map[string]interface{} {
			var payload dto.AddMinutesRequest
			if err := c.BodyParser(&payload); err != nil {
				return nil
			}
			return map[string]interface{}{"minutes": payload.Minutes}
		},
	}))
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	req := dto.AdminUserListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	users, err := h.users.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return utils.SendSuccess(c, "users listed", users)
}

func (h *AdminUserHandler) export(c *fiber.Ctx) error {
	payload, err := h.users.ExportCSV(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export users")
	}

	filename := fmt.Sprintf("users-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.Status(fiber.StatusOK).Send(payload)
}

func (h *AdminUserHandler) addMinutes(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload dto.AddMinutesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.AddMinutes(c.Context(), uint(userID), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Int("user_id", userID).Msg("failed to credit minutes")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to credit minutes")
		}
	}

	return utils.SendSuccess(c, "minutes credited", user)
}

// paramsTargetID builds a target extractor reading a route parameter. The
// value is copied because fiber recycles its buffers once the handler chain
// returns, and the audit writer outlives the request.
func paramsTargetID(name string) func(c *fiber.Ctx) *string {
	return func(c *fiber.Ctx) *string {
		value := fiberutils.CopyString(c.Params(name))
		if value == "" {
			return nil
		}
		return &value
	}
}
