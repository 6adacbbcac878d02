// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samber/oops"

	"github.com/taibuivan/todolist/internal/platform/postgres"
)

// PostgresStore writes audit entries to the audit_logs table.
type PostgresStore struct {
	db postgres.DBTX
}

// NewPostgresStore creates a store over db.
func NewPostgresStore(db postgres.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

/*
Insert persists entry. A zero CreatedAt lets the database assign NOW().

Parameters:
  - context: context.Context
  - entry: Entry

Returns:
  - error: Encoding or database failures
*/
func (repository *PostgresStore) Insert(context context.Context, entry Entry) error {
	const query = `
		INSERT INTO audit_logs (level, message, context, user_id, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))`

	var payload []byte
	if len(entry.Context) > 0 {
		encoded, err := json.Marshal(entry.Context)
		if err != nil {
			return oops.Code("AUDIT_ENCODE_FAILED").With("message", entry.Message).Wrap(err)
		}
		payload = encoded
	}

	var createdAt *time.Time
	if !entry.CreatedAt.IsZero() {
		createdAt = &entry.CreatedAt
	}

	if _, err := repository.db.Exec(context, query,
		string(entry.Level), entry.Message, payload, entry.UserID, createdAt,
	); err != nil {
		return oops.Code("AUDIT_INSERT_FAILED").With("message", entry.Message).Wrap(err)
	}
	return nil
}

/*
DeleteOlderThan removes entries created strictly before cutoff.

Returns:
  - int64: Number of deleted rows
  - error: Database failures
*/
func (repository *PostgresStore) DeleteOlderThan(context context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM audit_logs WHERE created_at < $1`

	tag, err := repository.db.Exec(context, query, cutoff)
	if err != nil {
		return 0, oops.Code("AUDIT_PRUNE_FAILED").With("cutoff", cutoff).Wrap(err)
	}
	return tag.RowsAffected(), nil
}
