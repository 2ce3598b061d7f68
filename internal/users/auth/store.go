// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository persists member accounts.
type UserRepository interface {
	Create(context context.Context, user *User) error
	FindByID(context context.Context, id string) (*User, error)
	FindByUsername(context context.Context, username string) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
}

// SessionRepository tracks refresh sessions keyed by hashed token.
// Sessions expire on their own via the store's TTL support.
type SessionRepository interface {
	Set(context context.Context, tokenHash, userID string, ttl time.Duration) error
	Get(context context.Context, tokenHash string) (string, error)
	Delete(context context.Context, tokenHash string) error
}
