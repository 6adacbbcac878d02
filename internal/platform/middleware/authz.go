// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/todolist/internal/platform/apperr"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/ctxutil"
	"github.com/taibuivan/todolist/internal/platform/metrics"
	"github.com/taibuivan/todolist/internal/platform/respond"
	"github.com/taibuivan/todolist/internal/platform/sec"
)

// Rejection stages reported on the token_rejections_total metric.
const (
	stageExtract = "extract"
	stageVerify  = "verify"
)

// TokenVerifier checks a raw bearer token. Implemented by [sec.TokenService].
type TokenVerifier interface {
	Verify(token string) (sec.SessionClaims, error)
}

// RequireToken guards a route group with bearer token authentication.
//
// # Flow
//  1. Extract the token from 'Authorization: Bearer <token>'.
//  2. Verify it via [TokenVerifier].
//  3. Inject [*sec.SessionClaims] and a user-scoped logger into the context.
//
// A failure at either step ends the request with the same 401 response and
// downstream handlers never run. Clients cannot tell a missing header from an
// expired or tampered token.
func RequireToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			// ── 1. Extraction ─────────────────────────────────────────────────
			token, err := sec.ExtractCredential(request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				reason := "malformed"
				if errors.Is(err, sec.ErrMissingCredential) {
					reason = "missing"
				}
				reject(writer, request, logger, stageExtract, reason)
				return
			}

			// ── 2. Verification ───────────────────────────────────────────────
			claims, err := verifier.Verify(token)
			if err != nil {
				reject(writer, request, logger, stageVerify, "invalid")
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx = ctxutil.WithAuthUser(ctx, &claims)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.Int64("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func reject(writer http.ResponseWriter, request *http.Request, logger *slog.Logger, stage, reason string) {
	metrics.TokenRejectionsTotal.WithLabelValues(stage).Inc()
	logger.DebugContext(request.Context(), "auth_token_rejected",
		slog.String("stage", stage),
		slog.String("reason", reason),
	)
	respond.Error(writer, request, apperr.Unauthorized(constants.MsgUnauthorizedToken))
}
