// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mrfuxi/gae-blog/internal/platform/middleware"
	requestutil "github.com/mrfuxi/gae-blog/internal/platform/request"
	"github.com/mrfuxi/gae-blog/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the JSON authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /login  : Authenticates and returns a JWT.
//   - POST /logout : Revokes the presented JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Login exchanges credentials for an access token.

POST /api/v1/auth/login

Response:
  - 200: access_token, token_type, expires_in, user
  - 400: Malformed body or missing fields
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int64(AccessTokenTTL / time.Second),
		FieldUser:        session.User,
	})
}

/*
Logout revokes the bearer token used for this request.

POST /api/v1/auth/logout

Response:
  - 204: Token revoked
  - 401: Not authenticated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
