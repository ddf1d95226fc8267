package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/mabat-platform/support-service/internal/api/http"
	"github.com/mabat-platform/support-service/internal/api/http/handlers"
	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/config"
	"github.com/mabat-platform/support-service/internal/events"
	"github.com/mabat-platform/support-service/internal/observability"
	"github.com/mabat-platform/support-service/internal/persistence"
	"github.com/mabat-platform/support-service/internal/repository"
	"github.com/mabat-platform/support-service/internal/service"
	"github.com/mabat-platform/support-service/internal/worker"
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
	repos := repository.NewRepositories(pool)
	txManager := repository.NewTxManager(pool)

	if err := persistence.Bootstrap(ctx, repos, cfg.Bootstrap, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, repos.Users)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   repos.Tickets,
		ResponseRepo: repos.Responses,
		CategoryRepo: repos.Categories,
		HotelRepo:    repos.Hotels,
		UserRepo:     repos.Users,
		RatingRepo:   repos.Ratings,
		Tx:           txManager,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(repos.Notifications, repos.Hotels, dispatcher, logger)
	statsService := service.NewStatsService(repos.Tickets, repos.Users, repos.Hotels, redis.Client, cfg.Stats.CacheTTL(), cfg.Stats.RecentTickets, logger)
	directoryService := service.NewDirectoryService(*cfg, repos.Users, repos.Hotels)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Hotels:         handlers.NewHotelsHandler(directoryService),
		Users:          handlers.NewUsersHandler(directoryService),
		Dashboard:      handlers.NewDashboardHandler(statsService),
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
