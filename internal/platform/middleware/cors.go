// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/taibuivan/todolist/internal/platform/constants"
)

// CORSConfig is the slice of configuration CORS reads.
type CORSConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsAllowHeaders = strings.Join([]string{
		"Accept", constants.HeaderContentType, "Content-Length", constants.HeaderAuthorization, constants.HeaderXRequestID,
	}, ", ")
	corsExposeHeaders = "Content-Length, " + constants.HeaderXRequestID
)

const corsMaxAgeSeconds = "300"

/*
CORS reflects allowed origins and answers preflight requests with 204.

Development accepts any origin. Other environments accept only
cfg.AllowedOrigins(). Requests without an Origin header pass through untouched.
*/
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if cfg.IsDevelopment() || slices.Contains(cfg.AllowedOrigins(), origin) {
				setCORSHeaders(writer.Header(), origin)
			}

			if isPreflight(request) {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func setCORSHeaders(header http.Header, origin string) {
	header.Set("Access-Control-Allow-Origin", origin)
	header.Set("Access-Control-Allow-Methods", corsMethods)
	header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
	header.Set("Access-Control-Max-Age", corsMaxAgeSeconds)
	header.Add("Vary", constants.HeaderOrigin)
}

func isPreflight(request *http.Request) bool {
	return request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != ""
}
