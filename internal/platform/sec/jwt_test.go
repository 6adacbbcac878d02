// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todolist/internal/platform/clock"
	"github.com/taibuivan/todolist/internal/platform/sec"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

var issuedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

/*
TestTokenService_RoundTrip verifies that issued claims come back unchanged
before expiry and are rejected from the expiration instant onward.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	fixedClock := clock.NewFixed(issuedAt)
	service := sec.NewTokenService(testSecret, fixedClock)

	token, err := service.Issue(sec.SessionClaims{UserID: 7, Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// 1. Immediately valid
	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, sec.SessionClaims{UserID: 7, Username: "alice"}, claims)

	// 2. Still valid one second before expiry
	fixedClock.Set(issuedAt.Add(24*time.Hour - time.Second))
	claims, err = service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	// 3. Invalid exactly at the expiration instant
	fixedClock.Set(issuedAt.Add(24 * time.Hour))
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// 4. Invalid afterwards
	fixedClock.Advance(time.Hour)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Payload checks the registered claims embedded in the token.
*/
func TestTokenService_Payload(t *testing.T) {
	service := sec.NewTokenService(testSecret, clock.NewFixed(issuedAt))

	token, err := service.Issue(sec.SessionClaims{UserID: 7, Username: "alice"})
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)

	mapClaims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "HS256", parsed.Method.Alg())
	assert.Equal(t, float64(7), mapClaims["userId"])
	assert.Equal(t, "alice", mapClaims["username"])
	assert.Equal(t, "7", mapClaims["sub"])
	assert.Equal(t, float64(issuedAt.Add(24*time.Hour).Unix()), mapClaims["exp"])
}

/*
TestTokenService_Rejects covers every way a token can fail verification.
All of them surface the same opaque error.
*/
func TestTokenService_Rejects(t *testing.T) {
	fixedClock := clock.NewFixed(issuedAt)
	service := sec.NewTokenService(testSecret, fixedClock)

	aliceToken, err := service.Issue(sec.SessionClaims{UserID: 7, Username: "alice"})
	require.NoError(t, err)
	bobToken, err := service.Issue(sec.SessionClaims{UserID: 8, Username: "bob"})
	require.NoError(t, err)

	// Alice's header and signature over Bob's payload.
	aliceParts := strings.Split(aliceToken, ".")
	bobParts := strings.Split(bobToken, ".")
	swapped := aliceParts[0] + "." + bobParts[1] + "." + aliceParts[2]

	otherSecret, err := sec.NewTokenService("another-secret", fixedClock).
		Issue(sec.SessionClaims{UserID: 7, Username: "alice"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId":   7,
		"username": "alice",
		"iss":      "todolist-api",
		"exp":      issuedAt.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   7,
		"username": "alice",
		"iss":      "todolist-api",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	anonymous, err := service.Issue(sec.SessionClaims{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"tampered_payload", swapped},
		{"wrong_secret", otherSecret},
		{"alg_none", unsigned},
		{"missing_expiry", noExpiry},
		{"missing_identity", anonymous},
		{"garbage", "not-a-token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.Equal(t, sec.ErrInvalidToken, err)
			assert.Zero(t, claims)
		})
	}
}

/*
TestTokenService_FallbackSecret verifies that an unset secret degrades to the
documented fallback instead of failing.
*/
func TestTokenService_FallbackSecret(t *testing.T) {
	fixedClock := clock.NewFixed(issuedAt)

	token, err := sec.NewTokenService("", fixedClock).Issue(sec.SessionClaims{UserID: 1, Username: "root"})
	require.NoError(t, err)

	claims, err := sec.NewTokenService(sec.FallbackSecret, fixedClock).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "root", claims.Username)
}
