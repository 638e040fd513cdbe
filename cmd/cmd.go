package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ride-tracker-backend/internal/config"
	"ride-tracker-backend/internal/handlers"
	"ride-tracker-backend/internal/repository"
	"ride-tracker-backend/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath, ".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	ctx := context.Background()
	db, err := repository.Connect(ctx, cfg.Database.URL, cfg.Database.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Str("database", cfg.Database.Name).Msg("Database connection established")

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap schema")
	}

	// Initialize repositories
	activityRepo := repository.NewActivityRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	feedHub := services.NewFeedHub()
	activityService := services.NewActivityService(activityRepo, feedHub)
	userService := services.NewUserService(userRepo)

	var mailer services.Mailer
	if cfg.Email.Configured() {
		mailer = services.NewSMTPMailer(services.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.User,
			Password: cfg.Email.Pass,
		})
	} else {
		log.Warn().Msg("EMAIL_USER/EMAIL_PASS not set, contact messages will not be delivered")
	}
	contactService := services.NewContactService(mailer)

	var exporter handlers.ActivityExporter
	if cfg.S3.Configured() {
		exportService, err := services.NewS3ExportService(ctx, activityRepo, services.S3Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create export service")
		}
		exporter = exportService
	} else {
		log.Info().Msg("S3_BUCKET not set, activity export disabled")
	}

	// Setup router
	router := handlers.NewRouter(handlers.RouterConfig{
		APIPrefix:      cfg.Server.APIPrefix,
		AllowedOrigins: cfg.CORS.Origins,
		Activities:     handlers.NewActivityHandler(activityService, exporter),
		Users:          handlers.NewUserHandler(userService),
		Contact:        handlers.NewContactHandler(contactService),
		Feed:           handlers.NewFeedHandler(feedHub, cfg.CORS.Origins),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("prefix", cfg.Server.APIPrefix).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Hijacked feed connections are not tracked by Shutdown
	feedHub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
