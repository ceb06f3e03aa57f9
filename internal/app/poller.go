package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/five82/quoter/internal/syncer"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
)

// Syncer is the part of *syncer.Syncer the poller needs.
type Syncer interface {
	Sync(ctx context.Context) (syncer.Result, error)
}

// StartPoller launches a background goroutine that syncs at a fixed cadence,
// backing off exponentially while the endpoint keeps failing. It returns
// immediately; the returned channel closes when the goroutine exits.
func StartPoller(ctx context.Context, s Syncer, interval time.Duration, logger *slog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		failures := 0
		for {
			failures = poll(ctx, s, failures, logger)
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
	return done
}

// poll runs one sync and returns the updated consecutive failure count.
func poll(ctx context.Context, s Syncer, failures int, logger *slog.Logger) int {
	if ctx.Err() != nil {
		return failures
	}
	_, err := s.Sync(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, syncer.ErrSyncInProgress):
		// A manual sync is running; it records its own outcome.
		return failures
	default:
		logger.Debug("poll failed", slog.Int("failures", failures+1), slog.Any("error", err))
		return failures + 1
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff. The cap never drops below base itself.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	wait := base
	for range failures {
		wait *= 2
		if wait >= limit {
			return limit
		}
	}
	return wait
}
