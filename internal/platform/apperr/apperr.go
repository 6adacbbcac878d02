// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr carries client-facing failures from services to the transport
layer.

An [AppError] pairs a stable code and an HTTP status with a message that is
safe to show. Validation failures add one [FieldError] per rejected field,
which the response envelope flattens into its errors array.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Machine-readable codes. They appear in logs only; clients see messages.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeConflict         = "CONFLICT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

// MsgInternal is the only text a client ever sees for a 5xx.
const MsgInternal = "Internal server error"

// AppError is a failure with a known HTTP rendering.
//
// Cause never reaches the client unless error detail is enabled for the request.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fe FieldError) String() string {
	return fe.Field + ": " + fe.Message
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

/*
Messages flattens the error into the envelope's errors array.

Returns:
  - []string: "<field>: <message>" per detail, or the message alone
*/
func (e *AppError) Messages() []string {
	if len(e.Details) == 0 {
		return []string{e.Message}
	}

	out := make([]string, len(e.Details))
	for i, detail := range e.Details {
		out[i] = detail.String()
	}
	return out
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// NotFound reports a missing resource as "<resource> not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// NotFoundMessage is a 404 with a caller-supplied message, used for unmatched routes.
func NotFoundMessage(message string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, message)
}

func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Conflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// ValidationError is a 400. Details, when present, replace message in the envelope.
func ValidationError(message string, details ...FieldError) *AppError {
	appError := newError(CodeValidation, http.StatusBadRequest, message)
	appError.Details = details
	return appError
}

func MethodNotAllowed(message string) *AppError {
	return newError(CodeMethodNotAllowed, http.StatusMethodNotAllowed, message)
}

// # 5xx

// Internal hides cause behind a generic 500 message.
func Internal(cause error) *AppError {
	appError := newError(CodeInternal, http.StatusInternalServerError, MsgInternal)
	appError.Cause = cause
	return appError
}

// # Inspection

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}
