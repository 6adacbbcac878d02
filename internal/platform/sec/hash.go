// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/metrics"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// # Concurrency
//
// bcrypt is CPU-bound and takes tens of milliseconds at the default cost.
// Hashing runs behind a weighted semaphore sized to GOMAXPROCS so a burst of
// registrations cannot monopolize every processor; callers waiting for a slot
// give up when their request context is cancelled.
type PasswordHasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewPasswordHasher creates a hasher with the given work factor and at most
// concurrency simultaneous bcrypt operations. Zero values select
// [constants.BcryptCost] and GOMAXPROCS.
func NewPasswordHasher(cost, concurrency int) *PasswordHasher {
	if cost == 0 {
		cost = constants.BcryptCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash returns a salted bcrypt hash of the plain-text password. The salt is
// embedded in the output, so two calls never return the same string.
func (hasher *PasswordHasher) Hash(ctx context.Context, plainTextPassword string) (string, error) {
	if err := hasher.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("sec: waiting for hashing slot: %w", err)
	}
	defer hasher.slots.Release(1)

	startTime := time.Now()
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	metrics.PasswordHashDurationSeconds.WithLabelValues("hash").Observe(time.Since(startTime).Seconds())

	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether plainTextPassword matches existingHash using
// bcrypt's constant-time comparison.
//
// A malformed or truncated hash is a mismatch, not an error. The error return
// is non-nil only when ctx ends before a hashing slot is available.
func (hasher *PasswordHasher) Verify(ctx context.Context, plainTextPassword, existingHash string) (bool, error) {
	if err := hasher.slots.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("sec: waiting for hashing slot: %w", err)
	}
	defer hasher.slots.Release(1)

	startTime := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	metrics.PasswordHashDurationSeconds.WithLabelValues("compare").Observe(time.Since(startTime).Seconds())

	return err == nil, nil
}
