// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todolist/internal/platform/redis"
)

func TestParseOptions(t *testing.T) {
	options, err := redis.ParseOptions("redis://:secret@cache.internal:6380/2", 0)
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", options.Addr)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, 10, options.PoolSize)
	assert.Equal(t, 2, options.MinIdleConns)
	assert.Equal(t, 5, options.MaxIdleConns)

	options, err = redis.ParseOptions("redis://localhost:6379", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, options.PoolSize)
	assert.Equal(t, 1, options.MinIdleConns)

	_, err = redis.ParseOptions("http://localhost", 0)
	assert.ErrorContains(t, err, "invalid URL")
}
