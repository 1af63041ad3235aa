package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/http/router"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/bootstrap"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/cache"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/config"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/database"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Connected to database")

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed")

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
		}
	}

	// Both models must be loaded before serving
	startCtx, startCancel := context.WithTimeout(context.Background(), cfg.ML.Timeout)
	pipeline, err := bootstrap.NewPipeline(startCtx, &cfg.ML, log)
	startCancel()
	if err != nil {
		log.Error("Model service is not usable", zap.Error(err))
		return err
	}

	// Setup router
	r := router.Setup(router.Deps{
		DB:               db,
		Redis:            redisClient,
		Models:           pipeline.Client,
		Predictor:        pipeline.Predictor,
		CacheTTL:         cfg.Redis.TTL,
		MaxNotifications: cfg.Messaging.MaxMessages,
		MaxUploadBytes:   cfg.Server.MaxUploadMB << 20,
		Logger:           log,
	})

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close database connection
	if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
