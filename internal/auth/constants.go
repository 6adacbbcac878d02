// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Rules

const (
	UsernameMinLength = 3
	UsernameMaxLength = 32
	PasswordMinLength = 8

	// PasswordMaxBytes is the longest input bcrypt accepts.
	PasswordMaxBytes = 72

	// PasswordSpecialChars lists the symbols that satisfy the special character rule.
	PasswordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// # Client Messages

const (
	MsgRegistered         = "User registered successfully"
	MsgLoggedIn           = "Login successful"
	MsgUsernameTaken      = "Username already exists"
	MsgInvalidCredentials = "Invalid credentials"
)
