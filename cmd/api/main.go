package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crane-workorders/internal/api/http"
	"github.com/spec-kit/crane-workorders/internal/api/http/handlers"
	"github.com/spec-kit/crane-workorders/internal/auth"
	"github.com/spec-kit/crane-workorders/internal/config"
	"github.com/spec-kit/crane-workorders/internal/events"
	"github.com/spec-kit/crane-workorders/internal/observability"
	"github.com/spec-kit/crane-workorders/internal/persistence"
	"github.com/spec-kit/crane-workorders/internal/repository"
	"github.com/spec-kit/crane-workorders/internal/service"
	"github.com/spec-kit/crane-workorders/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx, logger); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	dependencies := map[string]handlers.Pinger{cfg.Database.Driver: store}
	var sessions auth.SessionStore
	switch cfg.Auth.SessionStore {
	case config.SessionStoreRedis:
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		sessions = auth.NewRedisSessionStore(redis.Client, cfg.Redis.KeyPrefix)
		dependencies["redis"] = redis
	default:
		sessions = auth.NewMemorySessionStore()
	}

	userRepo := repository.NewUserRepository(store)
	workorderRepo := repository.NewWorkorderRepository(store)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:     userRepo,
		SessionStore: sessions,
		Logger:       logger,
	})
	if err := authService.EnsureDefaultUser(ctx, cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword); err != nil {
		logger.Fatal("failed to seed default user", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))
	workorderService := service.NewWorkorderService(service.WorkorderDependencies{
		WorkorderRepo: workorderRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName: cfg.App.Name,
		Middleware: httptransport.MiddlewareConfig{
			Logger:        logger,
			Metrics:       metrics,
			AllowedOrigin: cfg.CORS.AllowedOrigin,
			Timeout:       cfg.App.RequestTimeout(),
		},
		Routes: httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
			Auth:           handlers.NewAuthHandler(authService),
			Workorders:     handlers.NewWorkordersHandler(workorderService),
			AuthMiddleware: auth.NewAuthMiddleware(authService),
		},
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
