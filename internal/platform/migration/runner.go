// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the SQL files under data/migrations with
golang-migrate over the pgx v5 driver.

serve runs [RunUp] before accepting traffic. The migrate command exposes
[RunUp], [RunDown] and [Version] directly.
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/samber/oops"
)

// State is the schema version recorded in schema_migrations.
type State struct {
	Version uint
	Dirty   bool
	// Empty is true when no migration has ever been applied.
	Empty bool
}

// RunUp applies every pending migration. An up-to-date schema is not an error.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	return withSession(dsn, migrationsPath, logger, func(s *session) error {
		return s.apply("up", s.migrator.Up)
	})
}

// RunDown rolls back steps migrations, at least one.
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	steps = max(steps, 1)
	return withSession(dsn, migrationsPath, logger, func(s *session) error {
		return s.apply("down", func() error { return s.migrator.Steps(-steps) })
	})
}

// Version reports the current schema state without changing it.
func Version(dsn, migrationsPath string, logger *slog.Logger) (State, error) {
	var state State
	err := withSession(dsn, migrationsPath, logger, func(s *session) error {
		var err error
		state, err = s.state()
		return err
	})
	return state, err
}

// # Session

type session struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

func withSession(dsn, migrationsPath string, logger *slog.Logger, fn func(*session) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5URL(dsn))
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").With("path", migrationsPath).Wrap(err)
	}
	migrator.Log = slogAdapter{logger: logger}

	defer func() {
		sourceErr, dbErr := migrator.Close()
		if err := errors.Join(sourceErr, dbErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	return fn(&session{migrator: migrator, logger: logger})
}

func (s *session) state() (State, error) {
	version, dirty, err := s.migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return State{Empty: true}, nil
	case err != nil:
		return State{}, oops.Code("MIGRATION_VERSION_FAILED").Wrap(err)
	}
	return State{Version: version, Dirty: dirty}, nil
}

// apply refuses to touch a dirty schema; that needs a manual force.
func (s *session) apply(direction string, step func() error) error {
	before, err := s.state()
	if err != nil {
		return err
	}
	if before.Dirty {
		return oops.Code("MIGRATION_DIRTY").
			With("version", before.Version).
			Errorf("schema is dirty at version %d", before.Version)
	}

	s.logger.Info("migration_started",
		slog.String("direction", direction),
		slog.Uint64("current_version", uint64(before.Version)),
	)

	if err := step(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			s.logger.Info("migration_no_change", slog.String("direction", direction))
			return nil
		}
		return oops.Code("MIGRATION_FAILED").With("direction", direction).Wrap(err)
	}

	after, _ := s.state()
	s.logger.Info("migration_finished",
		slog.String("direction", direction),
		slog.Uint64("from_version", uint64(before.Version)),
		slog.Uint64("to_version", uint64(after.Version)),
	)
	return nil
}

// pgx5URL rewrites postgres:// and postgresql:// to the scheme the pgx/v5
// migrate driver registers.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter satisfies migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (slogAdapter) Verbose() bool { return false }
