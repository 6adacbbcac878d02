// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todolist/internal/auth"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

func newUserMock(t *testing.T) (pgxmock.PgxPoolIface, *auth.PostgresUserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, auth.NewUserRepository(mock)
}

/*
TestPostgresUserRepository_FindByUsername maps rows and the no-row case.
*/
func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock, repository := newUserMock(t)
		mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(7), "alice", "$2a$10$hash", createdAt))

		user, err := repository.FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, &auth.User{ID: 7, Username: "alice", PasswordHash: "$2a$10$hash", CreatedAt: createdAt}, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not_found", func(t *testing.T) {
		mock, repository := newUserMock(t)
		mock.ExpectQuery("SELECT id, username").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repository.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver_error", func(t *testing.T) {
		mock, repository := newUserMock(t)
		mock.ExpectQuery("SELECT id, username").
			WithArgs("alice").
			WillReturnError(errors.New("conn closed"))

		_, err := repository.FindByUsername(context.Background(), "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrUserNotFound)
		assert.ErrorContains(t, err, "conn closed")
	})
}

/*
TestPostgresUserRepository_Exists reads the boolean projection.
*/
func TestPostgresUserRepository_Exists(t *testing.T) {
	mock, repository := newUserMock(t)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repository.Exists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_Create returns the generated row and maps unique
violations to ErrUsernameTaken.
*/
func TestPostgresUserRepository_Create(t *testing.T) {
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("inserted", func(t *testing.T) {
		mock, repository := newUserMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "$2a$10$hash").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "alice", "$2a$10$hash", createdAt))

		user, err := repository.Create(context.Background(), "alice", "$2a$10$hash")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique_violation", func(t *testing.T) {
		mock, repository := newUserMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "$2a$10$hash").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})

		_, err := repository.Create(context.Background(), "alice", "$2a$10$hash")
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
