// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
	"github.com/mrfuxi/gae-blog/internal/platform/validate"
	"github.com/mrfuxi/gae-blog/pkg/uuid"
)

var (
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

	// ErrTokenRevoked is returned for tokens whose session was logged out.
	ErrTokenRevoked = errors.New("auth: token revoked")
)

// # Contracts & Types

// TokenProvider issues and verifies signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Service implements login, logout, token verification and admin bootstrap.
type Service struct {
	users   UserRepository
	revoked RevocationRepository
	tokens  TokenProvider
	logger  *slog.Logger
	now     func() time.Time

	// dummyHash keeps unknown-user logins as slow as wrong-password ones.
	dummyHash string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, revoked RevocationRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	dummyHash, _ := sec.HashPassword(uuid.New())

	return &Service{
		users:     users,
		revoked:   revoked,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummyHash,
	}
}

// # Authentication Flow

// LoginSession is the result of a successful login.
type LoginSession struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
Login checks credentials and issues an access token.

Unknown usernames and wrong passwords both return [ErrInvalidCredentials]
after a bcrypt comparison, so the two cases are indistinguishable.
*/
func (service *Service) Login(context context.Context, username, password string) (*LoginSession, error) {
	username = strings.TrimSpace(username)

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, username).
		MaxLen(FieldUsername, username, MaxUsernameLength).
		Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			return nil, err
		}
		sec.CheckPasswordHash(password, service.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.logger.WarnContext(context, "login_failed", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "login_succeeded",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresAt:   service.now().Add(AccessTokenTTL),
		User:        user,
	}, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
// Tokens that have already expired need no revocation.
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	var remaining time.Duration
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Sub(service.now())
	}
	if remaining <= 0 {
		return nil
	}

	if err := service.revoked.Revoke(context, claims.ID, remaining); err != nil {
		return apperr.Internal(err)
	}

	service.logger.InfoContext(context, "logout", slog.String("user_id", claims.UserID))
	return nil
}

// VerifyToken checks the signature and expiry of token and rejects revoked ones.
// A failing revocation store rejects the token.
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := service.revoked.IsRevoked(context, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: revocation check: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// # Bootstrap

/*
EnsureAdmin makes sure an administrator with the given credentials exists.

The account is created when missing. When it exists its role is forced to
admin and its hash refreshed if the password no longer matches.
*/
func (service *Service) EnsureAdmin(context context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("auth: admin username and password are required")
	}

	user, err := service.users.FindByUsername(context, username)
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		hash, err := sec.HashPassword(password)
		if err != nil {
			return err
		}

		user = &User{
			ID:           uuid.New(),
			Username:     username,
			PasswordHash: hash,
			Role:         sec.RoleAdmin,
			CreatedAt:    service.now().UTC(),
		}
		if err := service.users.Create(context, user); err != nil {
			return fmt.Errorf("auth: create admin: %w", err)
		}

		service.logger.InfoContext(context, "admin_bootstrapped", slog.String("username", username))
		return nil

	case err != nil:
		return fmt.Errorf("auth: find admin: %w", err)
	}

	matches := sec.CheckPasswordHash(password, user.PasswordHash)
	if user.Role == sec.RoleAdmin && matches && !sec.NeedsRehash(user.PasswordHash) {
		return nil
	}

	hash := user.PasswordHash
	if !matches || sec.NeedsRehash(hash) {
		if hash, err = sec.HashPassword(password); err != nil {
			return err
		}
	}

	if err := service.users.UpdateCredentials(context, user.ID, hash, string(sec.RoleAdmin)); err != nil {
		return fmt.Errorf("auth: refresh admin: %w", err)
	}

	service.logger.InfoContext(context, "admin_refreshed", slog.String("username", username))
	return nil
}
