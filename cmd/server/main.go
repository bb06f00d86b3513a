package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/config"
	"github.com/escusoft/escuela-backend/internal/database"
	"github.com/escusoft/escuela-backend/internal/handler"
	"github.com/escusoft/escuela-backend/internal/logger"
	"github.com/escusoft/escuela-backend/internal/repository"
	"github.com/escusoft/escuela-backend/internal/router"
	"github.com/escusoft/escuela-backend/internal/service"
	"github.com/escusoft/escuela-backend/internal/storage"
	"github.com/escusoft/escuela-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Escuela Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Connect to MinIO ──────────────────────────────────────────────
	store, err := storage.NewAttachmentStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure attachment storage")
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Str("bucket", cfg.MinioBucket).Msg("Failed to prepare attachment bucket")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	careerRepo := repository.NewCareerRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, authService, log)
	careerService := service.NewCareerService(careerRepo, log)
	subjectService := service.NewSubjectService(subjectRepo, careerRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, subjectRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, careerRepo, log)
	messageService := service.NewMessageService(messageRepo, userRepo, store, log)
	notificationService := service.NewNotificationService(userRepo, messageRepo, enrollmentRepo, paymentRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(userService),
		User:         handler.NewUserHandler(userService),
		Career:       handler.NewCareerHandler(careerService),
		Subject:      handler.NewSubjectHandler(subjectService, enrollmentService),
		Enrollment:   handler.NewEnrollmentHandler(enrollmentService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Message:      handler.NewMessageHandler(messageService, cfg),
		Notification: handler.NewNotificationHandler(notificationService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
