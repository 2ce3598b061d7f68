// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

/*
Package auth implements member identity and session management.

It covers registration, login, and the refresh-session lifecycle. Access is
granted through short-lived RSA-signed JWTs; long-lived refresh sessions live
in Redis under the hashed token and expire on their own.

The rest of the API only consumes this package indirectly, through the JWT
claims the middleware places in the request context.
*/
package auth

import (
	"time"

	"github.com/haminhtu/librarium/internal/platform/sec"
)

// User represents a registered member of the library.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Global field names for validation and response payloads
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
