package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/internal/utils"
)

// RosterHandler serves the per-account student/session aggregate view.
type RosterHandler struct {
	roster service.RosterService
	logger zerolog.Logger
}

// NewRosterHandler constructs the roster handler.
func NewRosterHandler(roster service.RosterService, logger zerolog.Logger) *RosterHandler {
	return &RosterHandler{
		roster: roster,
		logger: logger.With().Str("component", "roster_handler").Logger(),
	}
}

// Register attaches roster routes to the given router group.
func (h *RosterHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *RosterHandler) get(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	roster, cacheHit, err := h.roster.GetRoster(c.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to load roster")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load roster")
	}

	return utils.SendSuccess(c, "roster loaded", fiber.Map{
		"students":  roster.Students,
		"cache_hit": cacheHit,
	})
}
