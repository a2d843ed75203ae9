// Package main is the entry point for the Project Ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/project-ledger/backend/config"
	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/application/usecase/auth"
	"github.com/project-ledger/backend/internal/infra/cache"
	"github.com/project-ledger/backend/internal/infra/db"
	"github.com/project-ledger/backend/internal/infra/dependency"
	"github.com/project-ledger/backend/internal/integration/adapters"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Project Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"ledger_strategy", cfg.Ledger.Strategy,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	if err := dto.RegisterValidators(); err != nil {
		slog.Error("Failed to register request validators", "error", err)
		os.Exit(1)
	}

	redisClient := connectRedis(&cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	injector, err := dependency.NewInjector(cfg, dependency.Dependencies{
		DB:      database.DB(),
		Redis:   redisClient,
		Storage: connectStorage(ctx, &cfg.Storage),
		Logger:  logger,
	})
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	if _, err := injector.SeedAdmin.Execute(ctx, auth.SeedAdminInput{
		Email:    cfg.Admin.Email,
		Name:     cfg.Admin.Name,
		Password: cfg.Admin.Password,
	}); err != nil {
		slog.Error("Failed to seed admin account", "error", err)
	}

	var wg sync.WaitGroup
	for name, start := range injector.Workers {
		wg.Add(1)
		go func(name string, start func(context.Context)) {
			defer wg.Done()
			start(ctx)
			slog.Info("Background worker stopped", "worker", name)
		}(name, start)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stop()
	wg.Wait()

	slog.Info("Server exited properly")
}

// connectRedis returns nil when Redis is disabled or unreachable; the reconcile
// queue and rate limiters then fall back to memory.
func connectRedis(cfg *config.RedisConfig) *redis.Client {
	if cfg.URL == "" {
		slog.Info("Redis disabled")
		return nil
	}

	client, err := cache.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("Redis connection failed, continuing without Redis", "error", err)
		return nil
	}
	return client
}

// connectStorage returns nil when Firebase Storage is not configured. Evidence
// uploads and image analysis then answer 503.
func connectStorage(ctx context.Context, cfg *config.StorageConfig) adapter.BlobStorage {
	if cfg.Bucket == "" {
		slog.Warn("FIREBASE_STORAGE_BUCKET not set, evidence uploads are disabled")
		return nil
	}

	storage, err := adapters.NewFirebaseStorage(ctx, cfg.CredentialsFile, cfg.Bucket)
	if err != nil {
		slog.Warn("Firebase Storage initialization failed, evidence uploads are disabled", "error", err)
		return nil
	}
	return storage
}
