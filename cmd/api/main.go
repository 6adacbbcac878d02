// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the todolist HTTP API server.
//
// # Commands
//
//	api [serve]                Start the HTTP server (default).
//	api migrate up             Apply pending migrations.
//	api migrate down --steps N Roll back N migrations.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
