// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements registration and login for the todolist API.

It validates credentials, hashes passwords through a bounded bcrypt pool,
persists users in PostgreSQL and issues HS256 session tokens.

# Architecture

  - Validation: explicit per-shape validators, run before any side effect.
  - Service: the register and login workflows.
  - Repository: PostgreSQL user storage behind [UserRepository].
  - Handler: JSON transport for POST /register and POST /login.
*/
package auth

import "time"

// # Domain Entities

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialized.
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the transient username/password pair sent by clients.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string
	User  *User
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
)
