// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores per-request values on a [context.Context]: the
// request ID, the request-scoped logger, the verified session and the
// error-detail flag.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/todolist/internal/platform/sec"
)

// contextKey is unexported so no other package can collide with these keys.
type contextKey uint8

const (
	requestIDKey contextKey = iota + 1
	loggerKey
	authUserKey
	exposeErrorsKey
)

// value returns the typed value under key, or T's zero value.
func value[T any](ctx context.Context, key contextKey) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	return value[string](ctx, requestIDKey)
}

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger falls back to [slog.Default] so callers never nil-check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := value[*slog.Logger](ctx, loggerKey); logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches claims verified by the token guard.
func WithAuthUser(ctx context.Context, claims *sec.SessionClaims) context.Context {
	return context.WithValue(ctx, authUserKey, claims)
}

// GetAuthUser returns nil on unauthenticated requests.
func GetAuthUser(ctx context.Context) *sec.SessionClaims {
	return value[*sec.SessionClaims](ctx, authUserKey)
}

// WithExposeErrors sets whether 5xx envelopes may include cause text.
func WithExposeErrors(ctx context.Context, expose bool) context.Context {
	return context.WithValue(ctx, exposeErrorsKey, expose)
}

// ExposeErrors reports whether 5xx envelopes may include cause text. Default false.
func ExposeErrors(ctx context.Context) bool {
	return value[bool](ctx, exposeErrorsKey)
}
