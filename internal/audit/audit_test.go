// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/todolist/internal/audit"
	"github.com/taibuivan/todolist/internal/platform/clock"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// memoryStore is an in-memory [audit.Store].
type memoryStore struct {
	mu        sync.Mutex
	entries   []audit.Entry
	cutoffs   []time.Time
	insertErr error
}

func (store *memoryStore) Insert(_ context.Context, entry audit.Entry) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.insertErr != nil {
		return store.insertErr
	}
	store.entries = append(store.entries, entry)
	return nil
}

func (store *memoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.cutoffs = append(store.cutoffs, cutoff)

	var kept []audit.Entry
	var deleted int64
	for _, entry := range store.entries {
		if entry.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	store.entries = kept
	return deleted, nil
}

func (store *memoryStore) pruneCalls() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.cutoffs)
}

/*
TestRecorder_StampsEntries fills in the timestamp and default level.
*/
func TestRecorder_StampsEntries(t *testing.T) {
	store := &memoryStore{}
	recorder := audit.NewRecorder(store, clock.NewFixed(now))

	recorder.Record(context.Background(), audit.Entry{Message: audit.EventLogin})

	require.Len(t, store.entries, 1)
	assert.Equal(t, now, store.entries[0].CreatedAt)
	assert.Equal(t, audit.LevelInfo, store.entries[0].Level)
}

/*
TestRecorder_SwallowsFailures never propagates storage errors.
*/
func TestRecorder_SwallowsFailures(t *testing.T) {
	store := &memoryStore{insertErr: errors.New("disk full")}
	recorder := audit.NewRecorder(store, nil)

	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), audit.Entry{Message: audit.EventRegister})
	})
}

/*
TestPruner_PruneOnce deletes entries older than the retention window.
*/
func TestPruner_PruneOnce(t *testing.T) {
	store := &memoryStore{entries: []audit.Entry{
		{Message: "old", CreatedAt: now.Add(-31 * 24 * time.Hour)},
		{Message: "recent", CreatedAt: now.Add(-29 * 24 * time.Hour)},
	}}
	pruner := audit.NewPruner(store, clock.NewFixed(now), 30*24*time.Hour, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	deleted, err := pruner.PruneOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "recent", store.entries[0].Message)
	assert.Equal(t, now.Add(-30*24*time.Hour), store.cutoffs[0])
}

/*
TestPruner_RunStopsWithContext prunes at start and exits on cancellation.
*/
func TestPruner_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &memoryStore{}
	pruner := audit.NewPruner(store, clock.NewFixed(now), time.Hour, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pruner.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.pruneCalls() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}

/*
TestPostgresStore_Insert encodes the context as JSON and keeps a nil user.
*/
func TestPostgresStore_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := int64(7)
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("info", audit.EventLogin, []byte(`{"username":"alice"}`), &userID, &now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := audit.NewPostgresStore(mock)
	err = store.Insert(context.Background(), audit.Entry{
		Level:     audit.LevelInfo,
		Message:   audit.EventLogin,
		Context:   map[string]any{"username": "alice"},
		UserID:    &userID,
		CreatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresStore_DeleteOlderThan reports the affected row count.
*/
func TestPostgresStore_DeleteOlderThan(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM audit_logs").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	deleted, err := audit.NewPostgresStore(mock).DeleteOlderThan(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresStore_InsertFailure wraps the driver error.
*/
func TestPostgresStore_InsertFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = audit.NewPostgresStore(mock).Insert(context.Background(), audit.Entry{Level: audit.LevelWarn, Message: audit.EventAuthFailed})
	assert.ErrorContains(t, err, "connection reset")
}
