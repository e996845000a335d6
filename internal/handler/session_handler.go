package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/internal/utils"
)

// SessionHandler exposes the tutoring session lifecycle endpoints.
type SessionHandler struct {
	sessions  service.SessionService
	summaries service.SummaryService
	logger    zerolog.Logger
}

// NewSessionHandler constructs the session handler.
func NewSessionHandler(sessions service.SessionService, summaries service.SummaryService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		summaries: summaries,
		logger:    logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register attaches session routes to the given router group.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Post("", h.start)
	router.Put("/:id", h.close)
	router.Post("/:id/summary/draft", h.draftSummary)
}

func (h *SessionHandler) start(c *fiber.Ctx) error {
	var payload dto.SessionStartRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.Start(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			h.logger.Error().Err(err).Msg("failed to start session")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to start session")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session started", session)
}

func (h *SessionHandler) close(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid session id")
	}

	var payload dto.SessionCloseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	session, err := h.sessions.Close(c.Context(), uint(sessionID), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		default:
			h.logger.Error().Err(err).Int("session_id", sessionID).Msg("failed to close session")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to close session")
		}
	}

	return utils.SendSuccess(c, "session closed", session)
}

func (h *SessionHandler) draftSummary(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid session id")
	}

	var payload dto.SummaryDraftRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, err := h.summaries.Draft(c.Context(), uint(sessionID), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		case errors.Is(err, service.ErrDrafterUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, "summary drafting is not available")
		default:
			h.logger.Error().Err(err).Int("session_id", sessionID).Msg("failed to draft summary")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to draft summary")
		}
	}

	return utils.SendSuccess(c, "summary drafted", draft)
}
