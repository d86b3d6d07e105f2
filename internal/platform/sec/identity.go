// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package sec

// Identity describes who is performing an operation.
//
// The zero value is the anonymous visitor. Handlers build it from verified
// claims and pass it explicitly into services.
type Identity struct {
	UserID string
	Name   string
	Role   UserRole
}

// Anonymous is the identity of a visitor without a valid session.
var Anonymous = Identity{}

// IdentityFromClaims builds an Identity from verified token claims.
// Nil claims yield [Anonymous].
func IdentityFromClaims(claims *AuthClaims) Identity {
	if claims == nil {
		return Anonymous
	}
	return Identity{
		UserID: claims.UserID,
		Name:   claims.Username,
		Role:   UserRole(claims.Role),
	}
}

// LoggedIn reports whether the caller has a session.
func (identity Identity) LoggedIn() bool {
	return identity.UserID != ""
}

// IsAdmin reports whether the caller may write posts.
func (identity Identity) IsAdmin() bool {
	return identity.LoggedIn() && identity.Role.AtLeast(RoleAdmin)
}
