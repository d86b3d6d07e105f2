// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/mrfuxi/gae-blog/internal/platform/ctxkey"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuth returns a new context carrying verified claims and the identity
// derived from them.
func WithAuth(ctx context.Context, claims *sec.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, ctxkey.KeyClaims, claims)
	return context.WithValue(ctx, ctxkey.KeyIdentity, sec.IdentityFromClaims(claims))
}

// GetClaims retrieves the verified [*sec.AuthClaims], or nil for anonymous requests.
func GetClaims(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyClaims).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// GetIdentity retrieves the caller [sec.Identity].
// Requests without a verified session yield [sec.Anonymous].
func GetIdentity(ctx context.Context) sec.Identity {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(sec.Identity)
	if !ok {
		return sec.Anonymous
	}
	return identity
}
