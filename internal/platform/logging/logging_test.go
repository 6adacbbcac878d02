// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestParseLevel maps names and falls back to info.
*/
func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

/*
TestNew_Stdout writes JSON records carrying the app attribute.
*/
func TestNew_Stdout(t *testing.T) {
	var buffer bytes.Buffer
	logger, closer := newWithStdout(&buffer, Options{App: "todolist-api", Level: "warn"})
	defer closer.Close()

	logger.Info("dropped")
	logger.Warn("kept", slog.String("key", "value"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "todolist-api", record["app"])
	assert.Equal(t, "value", record["key"])
}

/*
TestNew_File duplicates records into the rotating file.
*/
func TestNew_File(t *testing.T) {
	var buffer bytes.Buffer
	path := filepath.Join(t.TempDir(), "api.log")

	logger, closer := newWithStdout(&buffer, Options{Debug: true, File: path, MaxSizeMB: 1})
	logger.Debug("debug_enabled")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "debug_enabled")
	assert.Contains(t, buffer.String(), "debug_enabled")
}
