package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/config"
	"github.com/studioflow/tutorly-api/internal/handler"
	"github.com/studioflow/tutorly-api/internal/middleware"
)

// Dependencies aggregates everything the router needs to mount the API.
type Dependencies struct {
	Config config.Config
	Logger zerolog.Logger

	Sessions      *handler.SessionHandler
	Roster        *handler.RosterHandler
	AdminUsers    *handler.AdminUserHandler
	Subscriptions *handler.AdminSubscriptionHandler
	Documents     *handler.AdminDocumentHandler
	Analytics     *handler.AdminAnalyticsHandler
	AdminLogs     *handler.AdminLogHandler
}

// Setup mounts all routes on the application.
func Setup(app *fiber.App, deps Dependencies) {
	middleware.Register(app, middleware.Config{Logger: &deps.Logger})

	api := app.Group("/api/v1")
	api.Get("/health", handler.HealthCheck(deps.Config))

	authenticated := api.Use(middleware.JWTProtected(deps.Config.JWTSecret))

	sessions := authenticated.Group("/sessions")
	sessions.Use(middleware.RateLimit("sessions", 60, time.Minute))
	deps.Sessions.Register(sessions)

	roster := authenticated.Group("/roster")
	deps.Roster.Register(roster)

	admin := app.Group("/api/admin",
		middleware.JWTProtected(deps.Config.JWTSecret),
		middleware.RequireRole("admin"),
	)

	deps.AdminUsers.Register(admin.Group("/users"))
	deps.Subscriptions.Register(admin.Group("/subscriptions"))
	deps.Documents.Register(admin.Group("/documents"))
	deps.Analytics.Register(admin.Group("/analytics"))
	deps.AdminLogs.Register(admin.Group("/logs"))
}
