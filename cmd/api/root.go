// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taibuivan/todolist/internal/platform/config"
	"github.com/taibuivan/todolist/internal/platform/constants"
	"github.com/taibuivan/todolist/internal/platform/logging"
)

// NewRootCmd creates the root command. Without a subcommand it serves HTTP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "todolist HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
}

// bootstrap loads configuration and builds the configured logger. Failures
// are logged through a plain stdout logger first.
func bootstrap() (*config.Config, *slog.Logger, io.Closer, error) {
	bootLog, _ := logging.New(logging.Options{App: constants.AppName})

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error("startup_failure", slog.String("step", "load configuration"), slog.Any("error", err))
		return nil, nil, nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	log, closer := logging.New(logging.Options{
		App:        constants.AppName,
		Level:      cfg.LogLevel,
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	slog.SetDefault(log)

	return cfg, log, closer, nil
}
