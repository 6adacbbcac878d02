// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads handler inputs: JSON bodies, path ids and the
// authenticated user.
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/todolist/internal/platform/apperr"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/ctxutil"
	"github.com/taibuivan/todolist/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Bodies larger than [constants.MaxRequestBodyBytes] are truncated and therefore
fail to decode.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	body := io.LimitReader(request.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Int64ID parses a named URL parameter as a positive integer identifier.

A value that is not a positive integer cannot name an existing record, so the
caller receives resource's NotFound error.
*/
func Int64ID(request *http.Request, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

/*
RequiredUserID returns the ID of the authenticated user.

Returns:
  - int64: User ID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (int64, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return 0, apperr.Unauthorized(constants.MsgUnauthorizedToken)
	}
	return claims.UserID, nil
}
