package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Evictor is a store that can drop entries unused for longer than an age
type Evictor interface {
	EvictOlder(age time.Duration) int
	Count() int
}

// StartSessionJanitor periodically evicts idle sessions from the given stores
// until ctx is cancelled. The returned channel closes when the worker exits.
func StartSessionJanitor(ctx context.Context, interval, idle time.Duration, logger *zap.Logger, stores map[string]Evictor) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				Sweep(idle, logger, stores)
			}
		}
	}()

	logger.Info("session janitor started",
		zap.Duration("interval", interval),
		zap.Duration("idle_timeout", idle))
	return done
}

// Sweep runs one eviction pass and returns the total number of evicted sessions
func Sweep(idle time.Duration, logger *zap.Logger, stores map[string]Evictor) int {
	total := 0
	for name, store := range stores {
		n := store.EvictOlder(idle)
		total += n
		logger.Debug("session sweep",
			zap.String("store", name),
			zap.Int("evicted", n),
			zap.Int("active", store.Count()))
	}
	return total
}
