// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import "context"

// Lookup is the result of a [ListCache] read.
type Lookup struct {
	Todos []*Todo
	Hit   bool
	// Generation is the owner's invalidation counter observed by the read.
	// Pass it back to Set after loading from the store.
	Generation uint64
}

/*
ListCache stores a user's unfiltered todo list.

Every Invalidate bumps the owner's generation. Set must drop its write when the
generation moved since the Get that preceded the load, so a snapshot taken
before a concurrent write is never cached after that write's invalidation.
*/
type ListCache interface {
	Get(ctx context.Context, userID int64) (Lookup, error)
	Set(ctx context.Context, userID int64, generation uint64, todos []*Todo) error
	Invalidate(ctx context.Context, userID int64) error
}

// NopCache never stores anything. Used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (Lookup, error)        { return Lookup{}, nil }
func (NopCache) Set(context.Context, int64, uint64, []*Todo) error { return nil }
func (NopCache) Invalidate(context.Context, int64) error           { return nil }
