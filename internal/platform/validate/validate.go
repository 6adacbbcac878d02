// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. Every rule appends a message of the form "<Label> <constraint>",
// where the label is the title-cased field name, and every violated rule is
// kept in call order.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/todolist/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation. The zero value is ready to use.
type Validator struct {
	errs  []apperr.FieldError
	title cases.Caser
	ready bool
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("must be at least %d characters long", min))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("must not exceed %d characters", max))
	}
	return v
}

// MaxBytes fails if the encoded length exceeds max bytes.
func (v *Validator) MaxBytes(field, value string, max int) *Validator {
	if len(value) > max {
		v.add(field, fmt.Sprintf("must not exceed %d bytes", max))
	}
	return v
}

// NoWhitespace fails if the value contains any Unicode whitespace.
func (v *Validator) NoWhitespace(field, value string) *Validator {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		v.add(field, "cannot contain whitespace characters")
	}
	return v
}

// ContainsFunc fails unless at least one rune satisfies match.
//
// # Example
//
//	v.ContainsFunc("password", pw, unicode.IsUpper, "uppercase letter")
func (v *Validator) ContainsFunc(field, value string, match func(rune) bool, description string) *Validator {
	if strings.IndexFunc(value, match) < 0 {
		v.add(field, "must contain at least one "+description)
	}
	return v
}

// ContainsAny fails unless the value contains at least one rune from chars.
func (v *Validator) ContainsAny(field, value, chars, description string) *Validator {
	if !strings.ContainsAny(value, chars) {
		v.add(field, "must contain at least one "+description)
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom records message against field when failed is true. The message
// follows the field label, like every other rule.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] whose message starts with the field label.
func (v *Validator) add(field, constraint string) {
	if !v.ready {
		v.title = cases.Title(language.English)
		v.ready = true
	}
	v.errs = append(v.errs, apperr.FieldError{
		Field:   field,
		Message: v.title.String(field) + " " + constraint,
	})
}
