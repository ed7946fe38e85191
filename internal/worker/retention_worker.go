package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/student-approval/internal/logsink"
)

// StartRetentionWorker prunes aged log files once at startup and then daily,
// until the context is cancelled. A zero retention disables pruning entirely.
func StartRetentionWorker(ctx context.Context, store *logsink.FileStore, retention time.Duration, logger *zap.Logger) {
	if retention <= 0 {
		return
	}

	prune := func() {
		if err := store.Prune(retention); err != nil {
			logger.Warn("log retention pass failed", zap.Error(err))
		}
	}
	prune()

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				prune()
			}
		}
	}()
}
