package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/ai"
	httptransport "github.com/spec-kit/quickplate-service/internal/api/http"
	"github.com/spec-kit/quickplate-service/internal/api/http/handlers"
	"github.com/spec-kit/quickplate-service/internal/auth"
	"github.com/spec-kit/quickplate-service/internal/config"
	"github.com/spec-kit/quickplate-service/internal/events"
	"github.com/spec-kit/quickplate-service/internal/observability"
	"github.com/spec-kit/quickplate-service/internal/persistence"
	"github.com/spec-kit/quickplate-service/internal/repository"
	"github.com/spec-kit/quickplate-service/internal/service"
	"github.com/spec-kit/quickplate-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	repos := repository.New(pool)
	txManager := repository.NewTxManager(pool)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, repos.Users, dispatcher, logger)
	catalogService := service.NewCatalogService(repos.Meals, redis, logger)
	loyaltyService := service.NewLoyaltyService(service.LoyaltyDependencies{
		Repos:      repos,
		TxManager:  txManager,
		Cache:      redis,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		Repos:      repos,
		TxManager:  txManager,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	assistantService := service.NewAssistantService(
		ai.NewGeminiClient(cfg.AI, logger),
		repos.Users,
		repos.Orders,
		logger,
	)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Meals:          handlers.NewMealsHandler(catalogService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Loyalty:        handlers.NewLoyaltyHandler(loyaltyService),
		AI:             handlers.NewAIHandler(assistantService),
		AuthMiddleware: authMiddleware,
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
