// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todolist/internal/platform/migration"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	down, _, err := cmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	steps, err := down.Flags().GetInt("steps")
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	up, _, err := cmd.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", up.Name())

	version, _, err := cmd.Find([]string{"migrate", "version"})
	require.NoError(t, err)
	assert.Equal(t, "version", version.Name())
}

func TestFormatState(t *testing.T) {
	assert.Equal(t, "no migrations applied", formatState(migration.State{Empty: true}))
	assert.Equal(t, "version 3", formatState(migration.State{Version: 3}))
	assert.Equal(t, "version 2 (dirty)", formatState(migration.State{Version: 2, Dirty: true}))
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"migrate", "up"})
	assert.Error(t, cmd.Execute())
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"migrate", "down", "--steps", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps must be at least 1")
}
