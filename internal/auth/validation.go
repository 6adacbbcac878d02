// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"
	"unicode"

	"github.com/taibuivan/todolist/internal/platform/validate"
)

// ValidateRegistration checks a registration payload and returns it normalized
// (username trimmed). Every violated rule is reported.
func ValidateRegistration(input Credentials) (Credentials, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password

	validator := &validate.Validator{}
	validator.
		MinLen(FieldUsername, username, UsernameMinLength).
		MaxLen(FieldUsername, username, UsernameMaxLength).
		NoWhitespace(FieldUsername, username).
		MinLen(FieldPassword, password, PasswordMinLength).
		MaxBytes(FieldPassword, password, PasswordMaxBytes).
		ContainsFunc(FieldPassword, password, unicode.IsLower, "lowercase letter").
		ContainsFunc(FieldPassword, password, unicode.IsUpper, "uppercase letter").
		ContainsAny(FieldPassword, password, PasswordSpecialChars, "special character")

	if err := validator.Err(); err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: password}, nil
}

// ValidateLogin checks that both fields are present. Strength rules do not
// apply at login.
func ValidateLogin(input Credentials) (Credentials, error) {
	username := strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, username).
		Custom(FieldPassword, input.Password == "", "is required")

	if err := validator.Err(); err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: input.Password}, nil
}
