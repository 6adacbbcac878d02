// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taibuivan/todolist/internal/platform/migration"
)

// NewMigrateCmd creates the migrate command and its up, down and version subcommands.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply or roll back SQL migrations from MIGRATION_PATH against DATABASE_URL.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
				return oops.Code("MIGRATION_FAILED").With("direction", "up").Wrap(err)
			}
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if steps < 1 {
				return oops.Code("INVALID_ARGUMENT").Errorf("--steps must be at least 1, got %d", steps)
			}

			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, log); err != nil {
				return oops.Code("MIGRATION_FAILED").With("direction", "down").With("steps", steps).Wrap(err)
			}
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			state, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, log)
			if err != nil {
				return err
			}
			log.Info("migration_version", slog.Uint64("version", uint64(state.Version)), slog.Bool("dirty", state.Dirty))
			_, err = fmt.Fprintln(command.OutOrStdout(), formatState(state))
			return err
		},
	})

	return cmd
}

func formatState(state migration.State) string {
	switch {
	case state.Empty:
		return "no migrations applied"
	case state.Dirty:
		return fmt.Sprintf("version %d (dirty)", state.Version)
	default:
		return fmt.Sprintf("version %d", state.Version)
	}
}
