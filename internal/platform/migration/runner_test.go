// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestPgx5URL rewrites postgres schemes and leaves others alone.
*/
func TestPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/todo", "pgx5://u:p@localhost:5432/todo"},
		{"postgresql://u:p@localhost/todo?sslmode=disable", "pgx5://u:p@localhost/todo?sslmode=disable"},
		{"pgx5://u:p@localhost/todo", "pgx5://u:p@localhost/todo"},
		{"host=localhost dbname=todo", "host=localhost dbname=todo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pgx5URL(tt.in))
	}
}

/*
TestRunUp_MissingSource fails before any database connection is attempted.
*/
func TestRunUp_MissingSource(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	err := RunUp("postgres://u:p@127.0.0.1:1/todo", t.TempDir()+"/absent", logger)
	require.Error(t, err)
}

/*
TestSlogAdapter writes migrate's printf output at debug level.
*/
func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := slogAdapter{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	adapter.Printf("applied %d\n", 3)
	assert.Contains(t, buf.String(), `msg="applied 3"`)
	assert.False(t, adapter.Verbose())
}
