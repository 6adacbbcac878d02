// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/todolist/internal/platform/clock"
)

// Pruner deletes entries older than the retention window on a fixed interval.
type Pruner struct {
	store     Store
	clock     clock.Clock
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

// NewPruner creates a Pruner. A nil clock selects the wall clock.
func NewPruner(store Store, clk clock.Clock, retention, interval time.Duration, logger *slog.Logger) *Pruner {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Pruner{
		store:     store,
		clock:     clk,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// PruneOnce deletes every entry created before now minus the retention window.
func (pruner *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := pruner.clock.Now().Add(-pruner.retention)
	return pruner.store.DeleteOlderThan(ctx, cutoff)
}

// Run prunes immediately and then on every tick until ctx is done.
func (pruner *Pruner) Run(ctx context.Context) {
	ticker := time.NewTicker(pruner.interval)
	defer ticker.Stop()

	for {
		deleted, err := pruner.PruneOnce(ctx)
		if err != nil && ctx.Err() == nil {
			pruner.logger.ErrorContext(ctx, "audit_prune_failed", slog.Any("error", err))
		} else if deleted > 0 {
			pruner.logger.InfoContext(ctx, "audit_pruned", slog.Int64("deleted", deleted))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
