package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/libroom/internal/command"
	"github.com/five82/libroom/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that pings the host and records
// the outcome in the store. After failures the wait doubles up to maxBackoff.
// It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, pinger command.Pinger, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures := ping(ctx, store, pinger, logger)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

func ping(ctx context.Context, store *state.Store, pinger command.Pinger, logger *zap.Logger) int {
	err := pinger.Ping(ctx)
	store.RecordHealth(err)
	snap := store.Snapshot()
	if err != nil {
		logger.Warn("host ping failed",
			zap.Error(err),
			zap.Int("consecutive_failures", snap.Health.ConsecutiveFailures),
		)
	}
	return snap.Health.ConsecutiveFailures
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
