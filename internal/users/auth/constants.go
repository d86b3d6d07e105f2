// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a login stays valid.
	// There is no refresh flow; users sign in again after it elapses.
	AccessTokenTTL = 12 * time.Hour

	// MaxUsernameLength bounds the login form input.
	MaxUsernameLength = 64
)
