// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/todolist/internal/platform/clock"
	"github.com/taibuivan/todolist/internal/platform/ctxutil"
)

// Store is the persistence contract used by [Recorder] and [Pruner].
type Store interface {
	Insert(ctx context.Context, entry Entry) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Recorder stamps and persists entries, swallowing storage failures.
type Recorder struct {
	store Store
	clock clock.Clock
}

// NewRecorder creates a Recorder. A nil clock selects the wall clock.
func NewRecorder(store Store, clk clock.Clock) *Recorder {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Recorder{store: store, clock: clk}
}

// Record persists entry. Failures are logged with the request logger and
// otherwise ignored.
func (recorder *Recorder) Record(ctx context.Context, entry Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = recorder.clock.Now()
	}
	if entry.Level == "" {
		entry.Level = LevelInfo
	}

	if err := recorder.store.Insert(ctx, entry); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "audit_record_failed",
			slog.String("event", entry.Message),
			slog.Any("error", err),
		)
	}
}
