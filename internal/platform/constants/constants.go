// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across layers: server
// timeouts, token parameters, header names and cache key prefixes.
package constants

import "time"

// AppName tags every log line.
const AppName = "todolist-api"

// # Server Timing

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// GlobalRequestTimeout bounds handler work; it is also the Postgres statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second

	// MaxRequestBodyBytes caps JSON request bodies.
	MaxRequestBodyBytes = 1 << 20
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "todolist-api"

	// SessionTokenTTL is the fixed lifetime of an issued session token.
	SessionTokenTTL = 24 * time.Hour

	// BcryptCost is the password hashing work factor.
	BcryptCost = 10

	// BearerPrefix is the literal scheme prefix of the Authorization header.
	BearerPrefix = "Bearer "

	// MsgUnauthorizedToken is the single message for every rejected bearer token.
	MsgUnauthorizedToken = "Unauthorized - Invalid or missing token"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
)

// # Cache Keys

// Both prefixes are followed by the owner's user id.
const (
	RedisPrefixTodoList           = "todo:list:"
	RedisPrefixTodoListGeneration = "todo:list:gen:"
)
