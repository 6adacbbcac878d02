// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer through small interfaces declared by the consumers.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/todolist/internal/platform/clock"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/metrics"
)

// FallbackSecret signs tokens when no secret is configured.
//
// # Deployment risk
//
// Anyone who knows this constant can mint valid tokens. The server still
// starts without a secret, but logs a warning at startup.
const FallbackSecret = "fallback-secret-key"

// ErrInvalidToken is the only error [TokenService.Verify] returns. Expired,
// tampered and malformed tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the identity payload embedded in a session token.
type SessionClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// tokenClaims is the full JWT body: registered claims plus the session identity.
type tokenClaims struct {
	jwt.RegisteredClaims
	SessionClaims
}

// TokenService issues and verifies HS256 session tokens.
//
// It holds no mutable state; verification is a pure function of the token,
// the secret and the clock.
type TokenService struct {
	secret []byte
	clock  clock.Clock
	ttl    time.Duration
	parser *jwt.Parser
}

// NewTokenService creates a TokenService signing with secret. An empty secret
// selects [FallbackSecret]; a nil clock selects the wall clock.
func NewTokenService(secret string, clk clock.Clock) *TokenService {
	if secret == "" {
		secret = FallbackSecret
	}
	if clk == nil {
		clk = clock.Real{}
	}

	return &TokenService{
		secret: []byte(secret),
		clock:  clk,
		ttl:    constants.SessionTokenTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(constants.AuthIssuer),
			jwt.WithTimeFunc(clk.Now),
		),
	}
}

// Issue signs claims into a token that expires [constants.SessionTokenTTL]
// after the current clock instant.
func (service *TokenService) Issue(claims SessionClaims) (string, error) {
	currentTime := service.clock.Now()
	body := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.UserID, 10),
			Issuer:    constants.AuthIssuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		SessionClaims: claims,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, body)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	metrics.TokensIssuedTotal.Inc()
	return signedToken, nil
}

// Verify checks the signature, structure and expiry of tokenString and returns
// the embedded claims. A token is expired from its expiration instant onward.
func (service *TokenService) Verify(tokenString string) (SessionClaims, error) {
	body := &tokenClaims{}
	token, err := service.parser.ParseWithClaims(tokenString, body, func(*jwt.Token) (any, error) {
		return service.secret, nil
	})
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}

	if body.UserID <= 0 || body.Username == "" {
		return SessionClaims{}, ErrInvalidToken
	}

	return body.SessionClaims, nil
}
