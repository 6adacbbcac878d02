// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no todo with the given ID belongs to the user.
var ErrNotFound = errors.New("todo: not found")

// Repository is the ownership-scoped storage contract. Every method filters by
// userID; rows owned by someone else behave as missing.
type Repository interface {
	List(ctx context.Context, userID int64, filter Filter) ([]*Todo, error)
	FindByID(ctx context.Context, id, userID int64) (*Todo, error)
	Create(ctx context.Context, userID int64, draft Draft) (*Todo, error)
	Update(ctx context.Context, id, userID int64, patch Patch) (*Todo, error)
	Delete(ctx context.Context, id, userID int64) error
}
