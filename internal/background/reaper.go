package background

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredCodeStore is the slice of the reset-code repository the reaper needs.
type ExpiredCodeStore interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Reaper periodically removes expired password-reset codes from the database.
// Sweep errors are logged and the loop keeps running; a failed pass never
// stops the reaper.
type Reaper struct {
	codeStore ExpiredCodeStore
	logger    *slog.Logger
	interval  time.Duration
	stopCh    chan struct{}
}

func NewReaper(codeStore ExpiredCodeStore, logger *slog.Logger, interval time.Duration) *Reaper {
	return &Reaper{
		codeStore: codeStore,
		logger:    logger,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or the context is
// cancelled. The first sweep runs immediately.
func (r *Reaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-r.stopCh:
			r.logger.Info("reset code reaper stopped")
			return
		case <-ctx.Done():
			r.logger.Info("reset code reaper context cancelled")
			return
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rowsDeleted, err := r.codeStore.DeleteExpired(sweepCtx)
	if err != nil {
		r.logger.Error("failed to sweep expired reset codes", slog.Any("error", err))
		return
	}

	if rowsDeleted > 0 {
		r.logger.Info("expired reset codes swept", slog.Int64("rows_deleted", rowsDeleted))
	}
}

// Stop signals the reaper to stop.
func (r *Reaper) Stop() {
	close(r.stopCh)
}
