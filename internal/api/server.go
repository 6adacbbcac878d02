// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api composes the chi router for the todo service and owns the
[http.Server] lifecycle.

Route map:

	GET  /health             liveness
	GET  /ready              readiness
	GET  /metrics            Prometheus exposition
	POST /api/auth/register  public
	POST /api/auth/login     public
	*    /api/todos/...      bearer token required
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/todolist/internal/auth"
	"github.com/taibuivan/todolist/internal/platform/config"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/middleware"
	"github.com/taibuivan/todolist/internal/platform/respond"
	"github.com/taibuivan/todolist/internal/todo"
)

// Handlers are the route sets the server mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Auth      *auth.Handler
	Todo      *todo.Handler
}

// Server is the HTTP front of the service.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

/*
NewServer builds the router and wraps it in an [http.Server] bound to
cfg.ServerPort.

Parameters:
  - cfg: *config.Config
  - log: *slog.Logger base logger for request logs
  - verifier: middleware.TokenVerifier guarding /api/todos
  - handlers: Handlers

Returns:
  - *Server
*/
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *Server {
	router := newRouter(cfg, log)
	mountProbes(router, handlers)
	mountAPI(router, verifier, handlers)

	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

// newRouter installs the global middleware chain and the JSON fallbacks.
func newRouter(cfg *config.Config, log *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		middleware.ErrorDetail(cfg.IsDevelopment()),
		middleware.PanicRecovery(),
		middleware.CORS(cfg),
		middleware.Metrics,
		chimw.Timeout(constants.GlobalRequestTimeout),
		chimw.CleanPath,
	)

	// Must precede Mount: sub-routers copy these at mount time.
	router.NotFound(respond.NotFound)
	router.MethodNotAllowed(respond.MethodNotAllowed)
	return router
}

func mountProbes(router chi.Router, handlers Handlers) {
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)
	router.Handle("/metrics", promhttp.Handler())
}

func mountAPI(router chi.Router, verifier middleware.TokenVerifier, handlers Handlers) {
	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", handlers.Auth.Routes())

		api.With(middleware.RequireToken(verifier)).Mount("/todos", handlers.Todo.Routes())
	})
}

// Handler returns the composed router, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks until the server stops. A graceful stop returns [http.ErrServerClosed].
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
