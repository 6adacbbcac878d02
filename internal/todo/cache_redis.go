// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/todolist/internal/platform/constants"
)

// errStaleGeneration aborts a Set whose snapshot predates an invalidation.
var errStaleGeneration = errors.New("todo list cache: stale generation")

/*
RedisListCache implements [ListCache] with two keys per user:

	todo:list:<id>      JSON list, expires after ttl
	todo:list:gen:<id>  invalidation counter, no expiry

Set runs under WATCH on the counter, so an Invalidate racing with it either
lands first (the generation check fails) or aborts the transaction.
*/
type RedisListCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisListCache creates a cache whose entries expire after ttl.
func NewRedisListCache(client redis.UniversalClient, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

/*
Get loads the cached list and the current generation for userID in one round trip.

Returns:
  - Lookup: Hit is false on a miss; Generation is always set
  - error: Redis or decoding errors
*/
func (cache *RedisListCache) Get(ctx context.Context, userID int64) (Lookup, error) {
	var listCmd, generationCmd *redis.StringCmd
	_, err := cache.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		listCmd = pipe.Get(ctx, listKey(userID))
		generationCmd = pipe.Get(ctx, generationKey(userID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return Lookup{}, fmt.Errorf("redis_get_todo_list_failed: %w", err)
	}

	generation, err := parseGeneration(generationCmd)
	if err != nil {
		return Lookup{}, err
	}

	payload, err := listCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{Generation: generation}, nil
	}
	if err != nil {
		return Lookup{}, fmt.Errorf("redis_get_todo_list_failed: %w", err)
	}

	var todos []*Todo
	if err := json.Unmarshal(payload, &todos); err != nil {
		return Lookup{}, fmt.Errorf("redis_decode_todo_list_failed: %w", err)
	}
	return Lookup{Todos: todos, Hit: true, Generation: generation}, nil
}

// Set stores todos unless userID's generation has moved past generation.
// A skipped write is not an error.
func (cache *RedisListCache) Set(ctx context.Context, userID int64, generation uint64, todos []*Todo) error {
	payload, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("redis_encode_todo_list_failed: %w", err)
	}

	counter := generationKey(userID)
	err = cache.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := parseGeneration(tx.Get(ctx, counter))
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listKey(userID), payload, cache.ttl)
			return nil
		})
		return err
	}, counter)

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis_set_todo_list_failed: %w", err)
	}
}

// Invalidate bumps userID's generation and drops the cached list atomically.
func (cache *RedisListCache) Invalidate(ctx context.Context, userID int64) error {
	_, err := cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, listKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_del_todo_list_failed: %w", err)
	}
	return nil
}

// parseGeneration treats a missing counter as generation zero.
func parseGeneration(cmd *redis.StringCmd) (uint64, error) {
	generation, err := cmd.Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis_get_todo_list_generation_failed: %w", err)
	}
	return generation, nil
}

func listKey(userID int64) string {
	return constants.RedisPrefixTodoList + strconv.FormatInt(userID, 10)
}

func generationKey(userID int64) string {
	return constants.RedisPrefixTodoListGeneration + strconv.FormatInt(userID, 10)
}
