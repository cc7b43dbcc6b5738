package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/ai"
	httptransport "github.com/wakanda-gov/platform/internal/api/http"
	"github.com/wakanda-gov/platform/internal/api/http/handlers"
	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/config"
	"github.com/wakanda-gov/platform/internal/events"
	"github.com/wakanda-gov/platform/internal/modules"
	"github.com/wakanda-gov/platform/internal/observability"
	"github.com/wakanda-gov/platform/internal/persistence"
	"github.com/wakanda-gov/platform/internal/repository"
	"github.com/wakanda-gov/platform/internal/service"
	"github.com/wakanda-gov/platform/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewPostgresUserRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notifications)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher, logger)
	userService := service.NewUserService(userRepo)
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), logger)

	metrics := observability.NewMetrics()
	recordStore := modules.NewStore()
	aiClient := ai.NewClient(cfg.AI)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		App:       cfg.App,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
		Metrics:   metrics,
		Redis:     redis,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Meta:    handlers.NewMetaHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env, metrics),
		Users:   handlers.NewUsersHandler(authService, userService),
		Jobs:    handlers.NewJobsHandler(recordStore),
		Finance: handlers.NewFinanceHandler(recordStore),
		Energy:  handlers.NewEnergyHandler(recordStore),
		Carbon:  handlers.NewCarbonHandler(recordStore),
		Policy:  handlers.NewPolicyHandler(recordStore),
		AI:      handlers.NewAIHandler(aiClient),
		Auth:    authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
