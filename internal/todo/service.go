// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/todolist/internal/platform/apperr"
	"github.com/taibuivan/todolist/internal/platform/ctxutil"
	"github.com/taibuivan/todolist/internal/platform/metrics"
)

// Cache result labels.
const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// Service implements todo business logic on top of a [Repository].
//
// The unfiltered list is read through the [ListCache]; every successful
// write invalidates the owner's entry. Cache failures are logged and never
// fail a request.
type Service struct {
	repo  Repository
	cache ListCache
}

// NewService constructs a new [Service]. A nil cache disables caching.
func NewService(repo Repository, cache ListCache) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{repo: repo, cache: cache}
}

/*
List returns the caller's todos, newest first.

Parameters:
  - context: context.Context
  - userID: int64
  - filter: Filter

Returns:
  - []*Todo: Possibly empty, never nil
  - error: Internal (500)
*/
func (service *Service) List(context context.Context, userID int64, filter Filter) ([]*Todo, error) {
	if filter.Checked != nil {
		return service.load(context, userID, filter)
	}

	lookup, err := service.cache.Get(context, userID)
	cacheReadable := err == nil
	switch {
	case err != nil:
		metrics.TodoCacheRequestsTotal.WithLabelValues(cacheError).Inc()
		service.cacheFailed(context, "get", userID, err)
	case lookup.Hit:
		metrics.TodoCacheRequestsTotal.WithLabelValues(cacheHit).Inc()
		return lookup.Todos, nil
	default:
		metrics.TodoCacheRequestsTotal.WithLabelValues(cacheMiss).Inc()
	}

	todos, err := service.load(context, userID, filter)
	if err != nil {
		return nil, err
	}

	// lookup.Generation predates the load, so a write that invalidated in
	// between makes the cache drop this snapshot.
	if cacheReadable {
		if err := service.cache.Set(context, userID, lookup.Generation, todos); err != nil {
			service.cacheFailed(context, "set", userID, err)
		}
	}
	return todos, nil
}

// Get returns one todo owned by userID.
func (service *Service) Get(context context.Context, id, userID int64) (*Todo, error) {
	todo, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return todo, nil
}

/*
Create validates input and stores a new todo for userID.

Parameters:
  - context: context.Context
  - userID: int64
  - input: CreateInput

Returns:
  - *Todo: The created item
  - error: ValidationError (400) or Internal (500)
*/
func (service *Service) Create(context context.Context, userID int64, input CreateInput) (*Todo, error) {
	draft, err := ValidateCreate(input)
	if err != nil {
		return nil, err
	}

	todo, err := service.repo.Create(context, userID, draft)
	if err != nil {
		return nil, mapStoreError(err)
	}

	service.invalidate(context, userID)
	return todo, nil
}

/*
Update applies the supplied fields to a todo owned by userID.

Validation runs before ownership is checked, so an invalid payload is a 400
even for an ID the caller does not own.

Parameters:
  - context: context.Context
  - id: int64
  - userID: int64
  - input: UpdateInput

Returns:
  - *Todo: The updated item
  - error: ValidationError (400), NotFound (404) or Internal (500)
*/
func (service *Service) Update(context context.Context, id, userID int64, input UpdateInput) (*Todo, error) {
	patch, err := ValidateUpdate(input)
	if err != nil {
		return nil, err
	}

	todo, err := service.repo.Update(context, id, userID, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}

	service.invalidate(context, userID)
	return todo, nil
}

// Delete removes a todo owned by userID.
func (service *Service) Delete(context context.Context, id, userID int64) error {
	if err := service.repo.Delete(context, id, userID); err != nil {
		return mapStoreError(err)
	}

	service.invalidate(context, userID)
	return nil
}

// # Helpers

func (service *Service) load(context context.Context, userID int64, filter Filter) ([]*Todo, error) {
	todos, err := service.repo.List(context, userID, filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if todos == nil {
		todos = []*Todo{}
	}
	return todos, nil
}

func (service *Service) invalidate(context context.Context, userID int64) {
	if err := service.cache.Invalidate(context, userID); err != nil {
		service.cacheFailed(context, "invalidate", userID, err)
	}
}

func (service *Service) cacheFailed(context context.Context, op string, userID int64, err error) {
	ctxutil.GetLogger(context).WarnContext(context, "todo_cache_failed",
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.Any("error", err),
	)
}

func mapStoreError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(ResourceName)
	}
	return apperr.Internal(err)
}
