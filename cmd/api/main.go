package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/configs"
	v1 "github.com/questcamp/quest-platform-be/internal/api/v1"
	"github.com/questcamp/quest-platform-be/internal/api/v1/handlers"
	"github.com/questcamp/quest-platform-be/internal/database"
	applogger "github.com/questcamp/quest-platform-be/internal/logger"
	appmiddleware "github.com/questcamp/quest-platform-be/internal/middleware"
	"github.com/questcamp/quest-platform-be/internal/repository"
	"github.com/questcamp/quest-platform-be/internal/scheduler"
	"github.com/questcamp/quest-platform-be/internal/service"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// Must run before anything that reads env vars (logger, database).
	configs.LoadConfig()

	logCloser := applogger.SetupLogger()
	if logCloser != nil {
		defer func() {
			zlog.Info().Msg("Closing log file...")
			if err := logCloser.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "[ERROR] Failed to close log file: %v\n", err)
			}
		}()
	}
	zlog.Info().Msg("Configuration loaded")

	dbPool, err := database.NewPgxPool()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Could not connect to the database")
	}
	defer dbPool.Close()
	zlog.Info().Msg("Database connection pool established")

	tentRepo := repository.NewTentRepository(dbPool)
	questRepo := repository.NewQuestRepository(dbPool)
	participationRepo := repository.NewParticipationRepository(dbPool)
	progressRepo := repository.NewUserProgressRepository(dbPool)
	levelRewardRepo := repository.NewLevelRewardRepository(dbPool)
	zlog.Info().Msg("Repositories initialized")

	prereqService := service.NewPrerequisiteService(questRepo, tentRepo)
	questService := service.NewQuestService(tentRepo, questRepo, participationRepo, prereqService)
	progressService := service.NewProgressService(dbPool, progressRepo, participationRepo, levelRewardRepo)
	zlog.Info().Msg("Services initialized")

	safetyScheduler := scheduler.NewSafetyCheckScheduler(progressService)
	safetyScheduler.Start()
	defer safetyScheduler.Stop()
	zlog.Info().Msg("Safety meter scheduler started")

	questHandler := handlers.NewQuestHandler(tentRepo, questService, prereqService)
	progressHandler := handlers.NewProgressHandler(progressService, questRepo)
	adminHandler := handlers.NewAdminHandler(questService, progressService, prereqService, safetyScheduler)
	zlog.Info().Msg("Handlers initialized")

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	appmiddleware.SetupGlobalMiddleware(app)

	v1.SetupRoutes(app, questHandler, progressHandler, adminHandler)
	zlog.Info().Msg("API v1 routes registered")

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "3000"
	}
	zlog.Info().Msgf("Server is starting on port %s...", appPort)
	if err := app.Listen(fmt.Sprintf(":%s", appPort)); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to start server")
	}
}
