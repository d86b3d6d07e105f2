// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/ctxutil"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
	"github.com/mrfuxi/gae-blog/internal/platform/validate"
)

// maxFormBytes caps form and JSON bodies. Posts are text only.
const maxFormBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if decoding fails.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ParseForm parses an urlencoded or multipart body.

Returns validate.ErrInvalidForm if the body cannot be parsed.
*/
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseMultipartForm(maxFormBytes); err != nil && err != http.ErrNotMultipart {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity returns the caller identity, anonymous when no session is attached.
*/
func Identity(request *http.Request) sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the token claims.

Returns apperr.Unauthorized if the request is not authenticated.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
