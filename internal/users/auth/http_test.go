package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfuxi/gae-blog/internal/platform/middleware"
	"github.com/mrfuxi/gae-blog/internal/users/auth"
)

/*
TestHandler_LoginLogout runs the JSON flow through the auth middleware.
*/
func TestHandler_LoginLogout(t *testing.T) {
	f := newFixture(t)
	handler := middleware.Authenticate(f.service)(auth.NewHandler(f.service).Routes())

	// 1. Login
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			ExpiresIn   int64  `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Bearer", body.Data.TokenType)
	assert.Equal(t, int64(12*60*60), body.Data.ExpiresIn)
	assert.NotContains(t, recorder.Body.String(), "password")

	// 2. Logout with the token
	logout := func() int {
		request := httptest.NewRequest(http.MethodPost, "/logout", nil)
		request.Header.Set("Authorization", "Bearer "+body.Data.AccessToken)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}
	assert.Equal(t, http.StatusNoContent, logout())

	// 3. The revoked token is now rejected by the middleware
	assert.Equal(t, http.StatusUnauthorized, logout())
}

/*
TestHandler_LoginFailures maps bad input and credentials.
*/
func TestHandler_LoginFailures(t *testing.T) {
	f := newFixture(t)
	handler := auth.NewHandler(f.service).Routes()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad_json", `{`, http.StatusBadRequest},
		{"missing_fields", `{}`, http.StatusBadRequest},
		{"wrong_password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
}
