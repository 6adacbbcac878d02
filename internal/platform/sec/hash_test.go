// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

/*
TestPasswordHasher_HashIsSalted verifies that hashing the same input twice
yields different strings that both verify.
*/
func TestPasswordHasher_HashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "Valid123!")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "Valid123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "Valid123!")

	for _, hash := range []string{first, second} {
		ok, err := hasher.Verify(ctx, "Valid123!", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

/*
TestPasswordHasher_Verify covers match, mismatch and malformed stored hashes.
*/
func TestPasswordHasher_Verify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	stored, err := hasher.Hash(ctx, "correct-Horse!")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"matching_password", "correct-Horse!", stored, true},
		{"different_password", "correct-Horse?", stored, false},
		{"empty_password", "", stored, false},
		{"malformed_hash", "correct-Horse!", "not-a-bcrypt-hash", false},
		{"truncated_hash", "correct-Horse!", stored[:20], false},
		{"empty_hash", "correct-Horse!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify(ctx, tt.password, tt.hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

/*
TestPasswordHasher_DefaultCost checks that zero arguments select the
configured work factor.
*/
func TestPasswordHasher_DefaultCost(t *testing.T) {
	hasher := NewPasswordHasher(0, 0)

	hash, err := hasher.Hash(context.Background(), "Valid123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

/*
TestPasswordHasher_WaitsForSlot verifies that a caller blocked on a busy pool
gives up when its context ends.
*/
func TestPasswordHasher_WaitsForSlot(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 1)

	// Occupy the only slot.
	require.NoError(t, hasher.slots.Acquire(context.Background(), 1))
	defer hasher.slots.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := hasher.Hash(ctx, "Valid123!")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ok, err := hasher.Verify(ctx, "Valid123!", "$2a$04$invalid")
	require.Error(t, err)
	assert.False(t, ok)
}

/*
TestPasswordHasher_Concurrent runs more hash operations than slots.
*/
func TestPasswordHasher_Concurrent(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := hasher.Hash(ctx, "Valid123!")
			if err != nil {
				errs <- err
				return
			}
			if ok, _ := hasher.Verify(ctx, "Valid123!", hash); !ok {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
