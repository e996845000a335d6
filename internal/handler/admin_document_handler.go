package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/middleware"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/internal/utils"
)

// AdminDocumentHandler manages study-material uploads and listings.
type AdminDocumentHandler struct {
	documents service.DocumentService
	audit     service.AuditRecorder
	logger    zerolog.Logger
}

// NewAdminDocumentHandler constructs the admin document handler.
func NewAdminDocumentHandler(documents service.DocumentService, audit service.AuditRecorder, logger zerolog.Logger) *AdminDocumentHandler {
	return &AdminDocumentHandler{
		documents: documents,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_document_handler").Logger(),
	}
}

// Register attaches admin document routes to the given router group.
func (h *AdminDocumentHandler) Register(router fiber.Router) {
	router.Get("", middleware.WithAudit(h.list, h.audit, h.logger, middleware.AuditOptions{
		Action:     models.AdminActionViewDocuments,
		TargetType: models.AuditTargetDocument,
		Details: func(c *fiber.Ctx) map[string]interface{} {
			if status := c.Query("status"); status != "" {
				return map[string]interface{}{"status": fiberutils.CopyString(status)}
			}
			return nil
		},
	}))
	router.Post("", h.upload)
}

func (h *AdminDocumentHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	req := dto.AdminDocumentListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}

	documents, err := h.documents.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list documents")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list documents")
	}

	return utils.SendSuccess(c, "documents listed", documents)
}

func (h *AdminDocumentHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	var ownerID *uint
	if adminID := userIDFromContext(c); adminID > 0 {
		ownerID = &adminID
	}

	document, err := h.documents.Upload(c.Context(), file, c.FormValue("title"), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "document exceeds maximum allowed size")
		case errors.Is(err, service.ErrDocumentTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "only pdf documents are accepted")
		default:
			h.logger.Error().Err(err).Msg("failed to upload document")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload document")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document uploaded", document)
}
