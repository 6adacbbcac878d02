// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todolist/internal/platform/ctxutil"
	"github.com/taibuivan/todolist/internal/platform/metrics"
	"github.com/taibuivan/todolist/internal/platform/middleware"
	"github.com/taibuivan/todolist/internal/platform/sec"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	valid  string
	claims sec.SessionClaims
	calls  int
}

func (verifier *stubVerifier) Verify(token string) (sec.SessionClaims, error) {
	verifier.calls++
	if token != verifier.valid {
		return sec.SessionClaims{}, sec.ErrInvalidToken
	}
	return verifier.claims, nil
}

/*
TestRequireToken_Rejects verifies that every failure produces the same 401
body and never reaches the downstream handler.
*/
func TestRequireToken_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		stage         string
		wantVerifyHit bool
	}{
		{"missing_header", "", "extract", false},
		{"wrong_scheme", "Token abc", "extract", false},
		{"lowercase_scheme", "bearer good", "extract", false},
		{"bad_token", "Bearer abc", "verify", true},
		{"empty_token", "Bearer ", "verify", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{valid: "good", claims: sec.SessionClaims{UserID: 7, Username: "alice"}}
			downstream := false
			handler := middleware.RequireToken(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				downstream = true
			}))

			before := testutil.ToFloat64(metrics.TokenRejectionsTotal.WithLabelValues(tt.stage))

			request := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.False(t, downstream)
			assert.Equal(t, tt.wantVerifyHit, verifier.calls > 0)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.JSONEq(t,
				`{"status":401,"errors":["Unauthorized - Invalid or missing token"],"data":null}`,
				recorder.Body.String())
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.TokenRejectionsTotal.WithLabelValues(tt.stage)))
		})
	}
}

/*
TestRequireToken_AttachesClaims verifies the happy path injects the identity.
*/
func TestRequireToken_AttachesClaims(t *testing.T) {
	verifier := &stubVerifier{valid: "good", claims: sec.SessionClaims{UserID: 7, Username: "alice"}}

	var seen *sec.SessionClaims
	handler := middleware.RequireToken(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	request.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, sec.SessionClaims{UserID: 7, Username: "alice"}, *seen)
}

/*
TestRequireToken_RealTokenService runs the guard against real tokens.
*/
func TestRequireToken_RealTokenService(t *testing.T) {
	tokens := sec.NewTokenService("guard-secret", nil)
	token, err := tokens.Issue(sec.SessionClaims{UserID: 3, Username: "carol"})
	require.NoError(t, err)

	handler := middleware.RequireToken(tokens)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		_ = json.NewEncoder(writer).Encode(claims)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"userId":3,"username":"carol"}`, recorder.Body.String())
}
