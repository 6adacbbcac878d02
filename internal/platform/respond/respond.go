// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response, success or error, is wrapped in the same JSON envelope:
//
//	{"status": 200, "errors": [], "data": {...}}
//
// errors is always an array and data is null on failure.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/todolist/internal/platform/apperr"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/ctxutil"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
	Data   any      `json:"data"`
}

// JSON writes payload with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Data writes data wrapped in a success envelope with the given status code.
func Data(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, Envelope{Status: statusCode, Errors: []string{}, Data: data})
}

// OK writes a 200 OK response with data wrapped in the standard envelope.
func OK(writer http.ResponseWriter, data any) {
	Data(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with data wrapped in the standard envelope.
func Created(writer http.ResponseWriter, data any) {
	Data(writer, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
//
// Errors that are not an [*apperr.AppError] become Internal. Server errors are
// logged with their cause; the cause text reaches the client only when the
// request context allows it (development mode).
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	messages := appError.Messages()

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
		if appError.Cause != nil && ctxutil.ExposeErrors(ctx) {
			messages = []string{appError.Cause.Error()}
		}
	}

	JSON(writer, appError.HTTPStatus, Envelope{
		Status: appError.HTTPStatus,
		Errors: messages,
		Data:   nil,
	})
}

// NotFound answers requests that match no route.
func NotFound(writer http.ResponseWriter, request *http.Request) {
	Error(writer, request, apperr.NotFoundMessage(fmt.Sprintf("Cannot %s %s", request.Method, request.URL.Path)))
}

// MethodNotAllowed answers requests whose path exists under another method.
func MethodNotAllowed(writer http.ResponseWriter, request *http.Request) {
	Error(writer, request, apperr.MethodNotAllowed(fmt.Sprintf("Method %s not allowed on %s", request.Method, request.URL.Path)))
}
