// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit persists security-relevant events (registrations, logins,
failed authentication attempts) to the audit_logs table and prunes them once
they fall outside the retention window.

Recording is best effort: a storage failure is logged and never fails the
request that produced the event.
*/
package audit

import "time"

// Level is the severity stored with an entry.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event names recorded by the auth workflow.
const (
	EventRegister   = "register"
	EventLogin      = "login"
	EventAuthFailed = "auth_failed"
)

// Entry is one audit log row.
type Entry struct {
	ID        int64          `json:"id"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	UserID    *int64         `json:"userId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
