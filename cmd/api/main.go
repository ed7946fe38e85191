package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/student-approval/internal/api/http"
	"github.com/spec-kit/student-approval/internal/api/http/handlers"
	"github.com/spec-kit/student-approval/internal/auth"
	"github.com/spec-kit/student-approval/internal/config"
	"github.com/spec-kit/student-approval/internal/events"
	"github.com/spec-kit/student-approval/internal/observability"
	"github.com/spec-kit/student-approval/internal/persistence"
	"github.com/spec-kit/student-approval/internal/repository"
	"github.com/spec-kit/student-approval/internal/service"
	"github.com/spec-kit/student-approval/internal/session"
	"github.com/spec-kit/student-approval/internal/telemetry"
	"github.com/spec-kit/student-approval/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	sessions := session.NewRedisStore(redis.Client, cfg.Session.KeyPrefix, cfg.Session.TTL())

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:  accountRepo,
		ProfileRepo:  profileRepo,
		SessionStore: sessions,
	})
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), sessions)

	dispatcher := events.NewInMemoryDispatcher()
	submissionService := service.NewSubmissionService(service.SubmissionDependencies{
		SubmissionRepo: submissionRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	sinkClient := telemetry.NewClient(cfg.Telemetry, logger)
	defer sinkClient.Close()
	telemetryService := service.NewTelemetryService(dispatcher, sinkClient, logger)
	worker.StartTelemetryWorker(telemetryService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Navigation:     handlers.NewNavigationHandler(),
		Submissions:    handlers.NewSubmissionsHandler(submissionService),
		Approvals:      handlers.NewApprovalsHandler(submissionService),
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
