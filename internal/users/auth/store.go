// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository persists accounts.
type UserRepository interface {
	// FindByUsername returns [dberr.ErrNotFound] when no account matches.
	FindByUsername(context context.Context, username string) (*User, error)
	// Create persists a new account.
	Create(context context.Context, user *User) error
	// UpdateCredentials replaces the password hash and role of an account.
	UpdateCredentials(context context.Context, id, passwordHash string, role string) error
}

// RevocationRepository remembers logged-out token IDs until they expire.
type RevocationRepository interface {
	// Revoke blocks the token ID for ttl.
	Revoke(context context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked reports whether the token ID was revoked.
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
