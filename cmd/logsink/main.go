package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/student-approval/internal/config"
	"github.com/spec-kit/student-approval/internal/logsink"
	"github.com/spec-kit/student-approval/internal/observability"
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

	store, err := logsink.NewFileStore(cfg.LogSink.Dir, logger)
	if err != nil {
		logger.Fatal("failed to init log store", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.StartRetentionWorker(ctx, store, cfg.LogSink.Retention(), logger)

	app := logsink.NewServer(store, logger)

	go func() {
		if err := app.Listen(cfg.LogSink.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("logger server running",
		zap.String("addr", cfg.LogSink.Addr()),
		zap.String("log_dir", store.Dir()),
	)

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
