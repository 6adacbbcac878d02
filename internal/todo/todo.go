// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package todo implements per-user todo items.
//
// Every storage operation is scoped by the owner's ID. A todo belonging to
// another user is reported exactly like one that does not exist.
package todo

import "time"

// Todo is a single task owned by one user.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Checked     bool      `json:"checked"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput is the client payload for a new todo.
type CreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Checked     *bool   `json:"checked"`
}

// UpdateInput is the client payload for a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Checked     *bool   `json:"checked"`
}

// Draft is a validated todo ready to be inserted.
type Draft struct {
	Title       string
	Description *string
	Checked     bool
}

// Patch is a validated partial update.
type Patch struct {
	Title *string
	// SetDescription marks Description as supplied; a nil Description then clears it.
	SetDescription bool
	Description    *string
	Checked        *bool
}

// Filter narrows a listing. A nil Checked returns every item.
type Filter struct {
	Checked *bool
}

// Field identifiers used in validation messages.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldChecked     = "checked"
)

const (
	TitleMinLength       = 2
	TitleMaxLength       = 128
	DescriptionMaxLength = 1024

	// ResourceName prefixes the NotFound message.
	ResourceName = "Todo item"
)
