// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/samber/oops"

	"github.com/taibuivan/todolist/internal/platform/dberr"
	"github.com/taibuivan/todolist/internal/platform/postgres"
)

// usernameConstraint is the unique constraint on users.username.
const usernameConstraint = "users_username_key"

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
FindByUsername retrieves a user record by its exact username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`

	user := &User{}
	err := repository.db.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, oops.Code("USER_FIND_FAILED").With("username", username).Wrap(err)
	}

	return user, nil
}

// Exists reports whether a user with the given username exists.
func (repository *PostgresUserRepository) Exists(context context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, username).Scan(&exists); err != nil {
		return false, oops.Code("USER_EXISTS_FAILED").With("username", username).Wrap(err)
	}
	return exists, nil
}

/*
Create persists a new user record.

The users_username_key constraint makes the insert atomic with respect to
concurrent registrations of the same name.

Parameters:
  - context: context.Context
  - username: string
  - passwordHash: string (bcrypt output, never the plain password)

Returns:
  - *User: The persisted entity with its generated ID
  - error: ErrUsernameTaken or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, username, passwordHash string) (*User, error) {
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at`

	user := &User{}
	err := repository.db.QueryRow(context, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, usernameConstraint) {
			return nil, ErrUsernameTaken
		}
		return nil, oops.Code("USER_CREATE_FAILED").With("username", username).Wrap(err)
	}

	return user, nil
}
