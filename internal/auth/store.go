// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when no user has the requested username.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrUsernameTaken is returned by Create when the unique constraint rejects the username.
	ErrUsernameTaken = errors.New("auth: username already taken")
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username (case-sensitive).

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	// Exists reports whether the username is already registered.
	Exists(context context.Context, username string) (bool, error)

	/*
		Create inserts a new account and returns it with its generated ID.

		Returns:
		  - *User: Persisted entity
		  - error: ErrUsernameTaken or database failures
	*/
	Create(context context.Context, username, passwordHash string) (*User, error)
}
