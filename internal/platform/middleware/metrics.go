// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/todolist/internal/platform/metrics"
)

// unmatchedRoute labels requests that did not resolve to a registered pattern,
// keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		wrappedWriter := newStatusRecorder(writer)

		next.ServeHTTP(wrappedWriter, request)

		route := unmatchedRoute
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		metrics.HTTPRequestsTotal.
			WithLabelValues(request.Method, route, strconv.Itoa(wrappedWriter.status)).
			Inc()
		metrics.HTTPRequestDurationSeconds.
			WithLabelValues(request.Method, route).
			Observe(time.Since(startTime).Seconds())
	})
}
