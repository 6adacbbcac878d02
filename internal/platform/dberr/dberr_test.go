// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/todolist/internal/platform/dberr"
)

/*
TestIsUniqueViolation matches the SQLSTATE and optional constraint name.
*/
func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"}
	wrapped := fmt.Errorf("insert user: %w", violation)

	assert.True(t, dberr.IsUniqueViolation(wrapped, ""))
	assert.True(t, dberr.IsUniqueViolation(wrapped, "users_username_key"))
	assert.False(t, dberr.IsUniqueViolation(wrapped, "todos_pkey"))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, ""))
	assert.False(t, dberr.IsUniqueViolation(errors.New("unique"), ""))
}

/*
TestIsNoRows recognizes the pgx sentinel through wrapping.
*/
func TestIsNoRows(t *testing.T) {
	assert.True(t, dberr.IsNoRows(fmt.Errorf("find: %w", pgx.ErrNoRows)))
	assert.False(t, dberr.IsNoRows(errors.New("no rows")))
}
