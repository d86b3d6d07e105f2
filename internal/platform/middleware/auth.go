// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/constants"
	"github.com/mrfuxi/gae-blog/internal/platform/ctxutil"
	"github.com/mrfuxi/gae-blog/internal/platform/respond"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from the auth service, which
// also checks the revocation list.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the caller identity for every request.
//
// # Flow
//  1. 'Authorization: Bearer <token>' wins; a malformed or invalid bearer is a 401.
//  2. Otherwise the session cookie is tried; an invalid cookie means anonymous.
//  3. Verified claims and the derived [sec.Identity] are injected into the context.
//
// Anonymous requests always proceed. Services decide what an anonymous
// caller may do.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// 1. Bearer token (API clients)
			if authHeader := request.Header.Get(constants.HeaderAuthorization); authHeader != "" {
				scheme, token, found := strings.Cut(authHeader, " ")
				if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}

				claims, err := verifier.VerifyToken(ctx, token)
				if err != nil {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}

				next.ServeHTTP(writer, request.WithContext(withClaims(ctx, claims)))
				return
			}

			// 2. Session cookie (browser pages)
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifyToken(ctx, cookie.Value)
			if err != nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "session_cookie_rejected", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			next.ServeHTTP(writer, request.WithContext(withClaims(ctx, claims)))
		})
	}
}

// withClaims attaches claims and tags the request logger with the user id.
func withClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	ctx = ctxutil.WithAuth(ctx, claims)
	logger := ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID))
	return ctxutil.WithLogger(ctx, logger)
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !ctxutil.GetIdentity(request.Context()).LoggedIn() {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
