package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/marryplan/marryplan-server/internal/api/http"
	"github.com/marryplan/marryplan-server/internal/api/http/handlers"
	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/config"
	"github.com/marryplan/marryplan-server/internal/observability"
	"github.com/marryplan/marryplan-server/internal/persistence"
	"github.com/marryplan/marryplan-server/internal/repository"
	"github.com/marryplan/marryplan-server/internal/service"
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
	userRepo := repository.NewUserRepository(pool)
	budgetRepo := repository.NewBudgetRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	hallRepo := repository.NewHallRepository(pool)

	codec := auth.NewCodec([]byte(cfg.Auth.JWTSecret))
	issuer := auth.NewIssuer(codec, cfg.Auth.AccessTokenTTL())
	validator := auth.NewValidator(codec, logger)
	authMiddleware := auth.NewMiddleware(validator, userRepo, logger)

	authService := service.NewAuthService(userRepo, issuer, cfg.Auth.BcryptCost)
	tradeService := service.NewTradePriceService(cfg.TradeAPI, redis, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Budgets:        handlers.NewBudgetsHandler(budgetRepo),
		Schedules:      handlers.NewSchedulesHandler(scheduleRepo),
		Listings:       handlers.NewListingsHandler(listingRepo),
		Halls:          handlers.NewHallsHandler(hallRepo),
		Trades:         handlers.NewTradesHandler(tradeService),
		Admin:          handlers.NewAdminHandler(userRepo, metrics),
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
