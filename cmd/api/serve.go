// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taibuivan/todolist/internal/api"
	"github.com/taibuivan/todolist/internal/audit"
	"github.com/taibuivan/todolist/internal/auth"
	"github.com/taibuivan/todolist/internal/platform/clock"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/migration"
	pgstore "github.com/taibuivan/todolist/internal/platform/postgres"
	redisstore "github.com/taibuivan/todolist/internal/platform/redis"
	"github.com/taibuivan/todolist/internal/platform/sec"
	"github.com/taibuivan/todolist/internal/todo"
)

// startupTimeout bounds connecting to dependencies so misconfiguration is
// caught quickly rather than hanging indefinitely.
const startupTimeout = 30 * time.Second

// runServe wires every dependency and blocks until SIGINT/SIGTERM.
//
// # Startup Sequence
//
//  1. Configuration and logger.
//  2. PostgreSQL (pgxpool).
//  3. Redis, when REDIS_URL is set.
//  4. Migrations (idempotent).
//  5. Security primitives.
//  6. Audit log and retention.
//  7. Domain wiring.
//  8. HTTP server with graceful shutdown.
func runServe(cmd *cobra.Command, _ []string) error {
	// ── 1. Configuration & Logger ─────────────────────────────────────────
	cfg, log, closer, err := bootstrap()
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info("service_initializing",
		slog.String("version", cmd.Root().Version),
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Cancelled by SIGINT/SIGTERM; background workers stop with it.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, startupTimeout)
	defer startupCancel()

	// ── 2. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns:         cfg.DBMaxConns,
		MinConns:         cfg.DBMinConns,
		StatementTimeout: constants.GlobalRequestTimeout,
	}, log)
	if err != nil {
		return startupFailure(log, "connect to postgres", err)
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()
	if err := pgstore.RegisterStats(prometheus.DefaultRegisterer, pgstore.StatsOf(pool)); err != nil {
		log.Warn("db_stats_not_exported", slog.Any("error", err))
	}

	// ── 3. Redis (optional) ───────────────────────────────────────────────
	var (
		listCache  todo.ListCache = todo.NopCache{}
		checkCache func(context.Context) error
	)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
		if err != nil {
			return startupFailure(log, "connect to redis", err)
		}
		defer closeRedis(log, rdb)

		listCache = todo.NewRedisListCache(rdb, cfg.TodoCacheTTL)
		checkCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		log.Info("redis_disabled", slog.String("reason", "REDIS_URL not set"))
	}

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return startupFailure(log, "run migrations", err)
	}

	// ── 5. Security ───────────────────────────────────────────────────────
	if cfg.UsingFallbackSecret() {
		log.Warn("jwt_secret_missing",
			slog.String("detail", "JWT_SECRET is not set; tokens are signed with the built-in fallback secret"),
		)
	}
	wallClock := clock.Real{}
	tokenService := sec.NewTokenService(cfg.JWTSecret, wallClock)
	passwordHasher := sec.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency)

	// ── 6. Audit Log ──────────────────────────────────────────────────────
	auditStore := audit.NewPostgresStore(pool)
	auditRecorder := audit.NewRecorder(auditStore, wallClock)
	pruner := audit.NewPruner(auditStore, wallClock, cfg.AuditRetention, cfg.AuditPruneInterval, log)

	prunerDone := make(chan struct{})
	go func() {
		defer close(prunerDone)
		pruner.Run(rootCtx)
	}()

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), passwordHasher, tokenService, auditRecorder)
	todoService := todo.NewService(todo.NewRepository(pool), listCache)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    checkCache,
	}, log)

	server := api.NewServer(cfg, log, tokenService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Todo:      todo.NewHandler(todoService),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	var runErr error
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
		runErr = oops.Code("SERVER_FAILED").Wrap(err)
		stop()
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		runErr = errors.Join(runErr, err)
	}
	<-prunerDone

	log.Info("server_stopped")
	return runErr
}

// startupFailure logs a structured startup error and returns it to cobra.
func startupFailure(log *slog.Logger, step string, err error) error {
	log.Error("startup_failure",
		slog.String("step", step),
		slog.Any("error", err),
	)
	return oops.Code("STARTUP_FAILED").With("step", step).Wrap(err)
}

func closeRedis(log *slog.Logger, rdb *goredis.Client) {
	log.Info("closing_redis_client")
	if err := rdb.Close(); err != nil {
		log.Error("redis_close_error", slog.Any("error", err))
	}
}
