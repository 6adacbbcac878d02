// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"strings"

	"github.com/taibuivan/todolist/internal/platform/constants"
)

var (
	// ErrMissingCredential is returned when no Authorization header was sent.
	ErrMissingCredential = errors.New("authorization header is required")

	// ErrMalformedCredential is returned when the header is not "Bearer <token>".
	ErrMalformedCredential = errors.New("authorization header must start with Bearer")
)

// ExtractCredential returns the token carried by an Authorization header value.
//
// An empty value counts as absent. The scheme match is exact and
// case-sensitive; everything after the literal "Bearer " prefix is returned
// as-is.
func ExtractCredential(authorizationHeader string) (string, error) {
	if authorizationHeader == "" {
		return "", ErrMissingCredential
	}

	token, found := strings.CutPrefix(authorizationHeader, constants.BearerPrefix)
	if !found {
		return "", ErrMalformedCredential
	}

	return token, nil
}
