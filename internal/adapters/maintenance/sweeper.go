package maintenance

import (
	"context"
	"log/slog"
	"time"
)

type StoreSweeper interface {
	SweepStores(ctx context.Context) error
}

// Sweeper periodically evicts aged records from the grant and progress
// stores, backing up the opportunistic sweeps that run on writes.
type Sweeper struct {
	logger   *slog.Logger
	target   StoreSweeper
	interval time.Duration
}

func NewSweeper(logger *slog.Logger, target StoreSweeper, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Sweeper{logger: logger, target: target, interval: interval}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.target.SweepStores(ctx); err != nil {
				s.logger.WarnContext(ctx, "store sweep failed", "error", err)
			}
		}
	}
}
