package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/config"
	"github.com/studioflow/tutorly-api/internal/database"
	"github.com/studioflow/tutorly-api/internal/handler"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/repository"
	"github.com/studioflow/tutorly-api/internal/router"
	"github.com/studioflow/tutorly-api/internal/service"
	"github.com/studioflow/tutorly-api/pkg/ai"
	"github.com/studioflow/tutorly-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := buildLogger(cfg)

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Lesson{},
		&models.Session{},
		&models.Subscription{},
		&models.Document{},
		&models.AdminLog{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		redisClient = nil
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, session events disabled")
		natsConn = nil
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	var storage service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		cloudinaryService, err := cloudinary.New(cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize cloudinary")
		}
		storage = cloudinaryService
	} else {
		logger.Warn().Msg("cloudinary not configured, document uploads disabled")
	}

	var drafter ai.SummaryDrafter
	if cfg.OpenAIAPIKey != "" {
		openAIDrafter, err := ai.NewOpenAIDrafter(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize summary drafter")
		}
		drafter = openAIDrafter
	} else {
		logger.Warn().Msg("openai not configured, summary drafting disabled")
	}

	adminLogRepo := repository.NewAdminLogRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	auditService := service.NewAuditService(adminLogRepo, logger)
	rosterService := service.NewRosterService(studentRepo, redisClient, cfg.RosterCacheTTL, logger)
	sessionEvents := service.NewNATSSessionEvents(natsConn, service.DefaultSessionEndedSubject, logger)
	sessionService := service.NewSessionService(sessionRepo, studentRepo, rosterService, sessionEvents, validate, logger)
	summaryService := service.NewSummaryService(sessionRepo, lessonRepo, drafter, validate, logger)
	adminUserService := service.NewAdminUserService(userRepo, validate, logger)
	subscriptionService := service.NewAdminSubscriptionService(subscriptionRepo, logger)
	documentService := service.NewDocumentService(storage, documentRepo, cfg.DocumentMaxSizeMB, logger)
	analyticsService := service.NewAdminAnalyticsService(analyticsRepo, redisClient, cfg.RosterCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	router.Setup(app, router.Dependencies{
		Config:        cfg,
		Logger:        logger,
		Sessions:      handler.NewSessionHandler(sessionService, summaryService, logger),
		Roster:        handler.NewRosterHandler(rosterService, logger),
		AdminUsers:    handler.NewAdminUserHandler(adminUserService, auditService, logger),
		Subscriptions: handler.NewAdminSubscriptionHandler(subscriptionService, auditService, logger),
		Documents:     handler.NewAdminDocumentHandler(documentService, auditService, logger),
		Analytics:     handler.NewAdminAnalyticsHandler(analyticsService, auditService, logger),
		AdminLogs:     handler.NewAdminLogHandler(auditService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Msg("server started")

	waitForShutdown(app, logger, natsConn)
}

func buildLogger(cfg config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.AppEnv == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("service", cfg.AppName).Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger, natsConn *nats.Conn) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	if natsConn != nil {
		if err := natsConn.Drain(); err != nil {
			logger.Warn().Err(err).Msg("failed to drain nats connection")
		}
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
