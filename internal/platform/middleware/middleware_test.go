package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfuxi/gae-blog/internal/platform/ctxutil"
	"github.com/mrfuxi/gae-blog/internal/platform/middleware"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
)

// fakeVerifier accepts a fixed set of tokens.
type fakeVerifier map[string]*sec.AuthClaims

func (verifier fakeVerifier) VerifyToken(_ context.Context, token string) (*sec.AuthClaims, error) {
	if claims, ok := verifier[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

// identityEcho writes the resolved identity name, or "anonymous".
var identityEcho = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if !identity.LoggedIn() {
		_, _ = writer.Write([]byte("anonymous"))
		return
	}
	_, _ = writer.Write([]byte(identity.Name))
})

/*
TestAuthenticate resolves identity from bearer headers and session cookies.
*/
func TestAuthenticate(t *testing.T) {
	verifier := fakeVerifier{
		"admin-token":  {UserID: "u1", Username: "alice", Role: "admin"},
		"member-token": {UserID: "u2", Username: "bob", Role: "member"},
	}
	handler := middleware.Authenticate(verifier)(identityEcho)

	tests := []struct {
		name   string
		header string
		cookie string
		status int
		body   string
	}{
		{"anonymous", "", "", http.StatusOK, "anonymous"},
		{"valid_bearer", "Bearer admin-token", "", http.StatusOK, "alice"},
		{"lowercase_scheme", "bearer member-token", "", http.StatusOK, "bob"},
		{"invalid_bearer", "Bearer nope", "", http.StatusUnauthorized, ""},
		{"malformed_header", "Token admin-token", "", http.StatusUnauthorized, ""},
		{"valid_cookie", "", "member-token", http.StatusOK, "bob"},
		{"invalid_cookie_is_anonymous", "", "stale", http.StatusOK, "anonymous"},
		{"bearer_wins_over_cookie", "Bearer admin-token", "member-token", http.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireAuth rejects anonymous callers with 401.
*/
func TestRequireAuth(t *testing.T) {
	verifier := fakeVerifier{"t": {UserID: "u1", Username: "alice", Role: "member"}}
	handler := middleware.Authenticate(verifier)(middleware.RequireAuth(identityEcho))

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	request.Header.Set("Authorization", "Bearer t")
	authenticated := httptest.NewRecorder()
	handler.ServeHTTP(authenticated, request)
	assert.Equal(t, http.StatusOK, authenticated.Code)
}

/*
TestRequestID echoes a client ID or generates a fresh one.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
}

/*
TestRateLimitWith blocks a client once its burst is spent.
*/
func TestRateLimitWith(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 0.001, 2)(identityEcho)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:1234"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.2:1234"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestPanicRecovery converts a panic into a 500 JSON error.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestCORS only echoes allowed origins outside development.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		origin      string
		allowed     bool
	}{
		{"development_any", true, "http://localhost:5173", true},
		{"production_suffix", false, "https://www.example.org", true},
		{"production_foreign", false, "https://evil.test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.development, "example.org")(identityEcho)
			request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
