package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/geodraw/internal/common/clock"
	"github.com/KirkDiggler/geodraw/internal/common/uuid"
	"github.com/KirkDiggler/geodraw/internal/config"
	"github.com/KirkDiggler/geodraw/internal/handlers/httpapi"
	"github.com/KirkDiggler/geodraw/internal/picker"
	distanceRepo "github.com/KirkDiggler/geodraw/internal/repositories/distance"
	gameRepo "github.com/KirkDiggler/geodraw/internal/repositories/game"
	scoreRepo "github.com/KirkDiggler/geodraw/internal/repositories/score"
	sessionRepo "github.com/KirkDiggler/geodraw/internal/repositories/session"
	templateRepo "github.com/KirkDiggler/geodraw/internal/repositories/template"
	gameService "github.com/KirkDiggler/geodraw/internal/services/game"
	"github.com/KirkDiggler/geodraw/internal/services/realtime"
	sessionService "github.com/KirkDiggler/geodraw/internal/services/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Error("failed to create session repository", "error", err)
		os.Exit(1)
	}

	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Error("failed to create game repository", "error", err)
		os.Exit(1)
	}

	distances, err := distanceRepo.NewRedis(&distanceRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Error("failed to create distance repository", "error", err)
		os.Exit(1)
	}

	scores, err := scoreRepo.NewRedis(&scoreRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Error("failed to create score repository", "error", err)
		os.Exit(1)
	}

	templates, err := templateRepo.NewRedis(&templateRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Error("failed to create template repository", "error", err)
		os.Exit(1)
	}

	if err := templates.Seed(ctx); err != nil {
		logger.Error("failed to seed template catalog", "error", err)
		os.Exit(1)
	}

	// Initialize the realtime publisher
	publisher, err := realtime.New(&realtime.Config{RedisClient: redisClient})
	if err != nil {
		logger.Error("failed to create realtime publisher", "error", err)
		os.Exit(1)
	}

	// Initialize services
	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo:   sessions,
		TemplateRepo:  templates,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		logger.Error("failed to create session service", "error", err)
		os.Exit(1)
	}

	gameSvc, err := gameService.New(&gameService.Config{
		SessionSvc:    sessionSvc,
		GameRepo:      games,
		DistanceRepo:  distances,
		ScoreRepo:     scores,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Picker:        picker.New(&picker.Config{}),
		Publisher:     publisher,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create game service", "error", err)
		os.Exit(1)
	}

	router := httpapi.New(&httpapi.Config{
		Logger:      logger,
		SessionSvc:  sessionSvc,
		GameSvc:     gameSvc,
		RedisClient: redisClient,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis client", "error", err)
	}
}
