// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

/*
Package auth implements the blog's identity layer.

There is no self-registration. One administrator account is bootstrapped
from configuration at startup; further member accounts may exist in the
users.account table. Logging in yields an RS256 access token which the
browser keeps in a session cookie and API clients send as a bearer token.
Logging out revokes the token's ID in Redis until it would have expired.
*/
package auth

import (
	"time"

	"github.com/mrfuxi/gae-blog/internal/platform/sec"
)

// # Domain Entities

// User is an account able to sign in.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Identity returns the identity this user acts as.
func (user *User) Identity() sec.Identity {
	return sec.Identity{UserID: user.ID, Name: user.Username, Role: user.Role}
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
