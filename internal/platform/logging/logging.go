// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process-wide structured logger.
//
// Records are JSON on stdout and, when a file is configured, duplicated into a
// size-rotated file managed by lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the logger output.
type Options struct {
	// App is attached to every record as the "app" attribute.
	App string
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Debug forces the debug level regardless of Level.
	Debug bool

	// File enables the rotating file sink when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns the configured logger and a closer for the file sink. The closer
// is a no-op when no file is configured.
func New(options Options) (*slog.Logger, io.Closer) {
	return newWithStdout(os.Stdout, options)
}

func newWithStdout(stdout io.Writer, options Options) (*slog.Logger, io.Closer) {
	var (
		output io.Writer = stdout
		closer io.Closer = nopCloser{}
	)

	if options.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    options.MaxSizeMB,
			MaxBackups: options.MaxBackups,
			MaxAge:     options.MaxAgeDays,
			Compress:   true,
		}
		output = io.MultiWriter(stdout, rotating)
		closer = rotating
	}

	level := ParseLevel(options.Level)
	if options.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
	if options.App != "" {
		logger = logger.With(slog.String("app", options.App))
	}
	return logger, closer
}

// ParseLevel maps a case-insensitive level name to a [slog.Level].
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
