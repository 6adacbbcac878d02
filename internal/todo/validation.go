// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"strings"

	"github.com/taibuivan/todolist/internal/platform/validate"
	"github.com/taibuivan/todolist/pkg/pointer"
)

// ValidateCreate checks a new todo. The title and description are trimmed;
// an empty description is stored as NULL.
func ValidateCreate(input CreateInput) (Draft, error) {
	title := strings.TrimSpace(input.Title)
	description := trimOptional(input.Description)

	validator := &validate.Validator{}
	validator.
		MinLen(FieldTitle, title, TitleMinLength).
		MaxLen(FieldTitle, title, TitleMaxLength)
	if description != nil {
		validator.MaxLen(FieldDescription, *description, DescriptionMaxLength)
	}

	if err := validator.Err(); err != nil {
		return Draft{}, err
	}

	return Draft{
		Title:       title,
		Description: pointer.NilIfZero(description),
		Checked:     pointer.Val(input.Checked),
	}, nil
}

// ValidateUpdate checks only the fields present in input.
func ValidateUpdate(input UpdateInput) (Patch, error) {
	var patch Patch
	validator := &validate.Validator{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		validator.
			MinLen(FieldTitle, title, TitleMinLength).
			MaxLen(FieldTitle, title, TitleMaxLength)
		patch.Title = &title
	}

	if input.Description != nil {
		description := trimOptional(input.Description)
		validator.MaxLen(FieldDescription, *description, DescriptionMaxLength)
		patch.SetDescription = true
		patch.Description = pointer.NilIfZero(description)
	}

	patch.Checked = input.Checked

	if err := validator.Err(); err != nil {
		return Patch{}, err
	}
	return patch, nil
}

// ParseFilter reads the optional ?checked= query value.
func ParseFilter(checked string) (Filter, error) {
	if checked == "" {
		return Filter{}, nil
	}

	validator := &validate.Validator{}
	if err := validator.OneOf(FieldChecked, checked, "true", "false").Err(); err != nil {
		return Filter{}, err
	}
	return Filter{Checked: pointer.To(checked == "true")}, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	return pointer.To(strings.TrimSpace(*value))
}
