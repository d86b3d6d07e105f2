package post_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfuxi/gae-blog/internal/core/post"
	"github.com/mrfuxi/gae-blog/internal/platform/ctxutil"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
)

// asIdentity injects an identity the way the auth middleware would.
func asIdentity(who sec.Identity, next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if who.LoggedIn() {
			claims := &sec.AuthClaims{UserID: who.UserID, Username: who.Name, Role: string(who.Role)}
			request = request.WithContext(ctxutil.WithAuth(request.Context(), claims))
		}
		next.ServeHTTP(writer, request)
	})
}

func serve(t *testing.T, service *post.Service, who sec.Identity, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := asIdentity(who, post.NewHandler(service).Routes())

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Code  string          `json:"code"`
	Error string          `json:"error"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

/*
TestHandler_CreateAndGet exercises the JSON write and read path.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	service, _ := newService(t)

	created := serve(t, service, admin, http.MethodPost, "/", `{"title":"Hello World","body":"Hi"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, created).Data, &got))
	assert.Equal(t, "hello-world", got["slug"])
	assert.Equal(t, "alice", got["author"])
	assert.NotEmpty(t, got["id"])
	assert.NotEmpty(t, got["created_at"])

	fetched := serve(t, service, sec.Anonymous, http.MethodGet, "/hello-world", "")
	assert.Equal(t, http.StatusOK, fetched.Code)

	missing := serve(t, service, sec.Anonymous, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, missing).Code)
}

/*
TestHandler_WriteStatuses maps service errors onto HTTP statuses.
*/
func TestHandler_WriteStatuses(t *testing.T) {
	service, _ := newService(t)
	mustCreate(t, service, "Existing", "Body")

	tests := []struct {
		name   string
		who    sec.Identity
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"anonymous_create", sec.Anonymous, http.MethodPost, "/", `{"title":"a","body":"b"}`, http.StatusForbidden, "FORBIDDEN"},
		{"member_create_bad_json", member, http.MethodPost, "/", `{`, http.StatusForbidden, "FORBIDDEN"},
		{"admin_bad_json", admin, http.MethodPost, "/", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"admin_missing_fields", admin, http.MethodPost, "/", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"admin_duplicate", admin, http.MethodPost, "/", `{"title":"existing","body":"b"}`, http.StatusBadRequest, "DUPLICATE_TITLE"},
		{"admin_update_missing", admin, http.MethodPut, "/ghost", `{"title":"a","body":"b"}`, http.StatusNotFound, "NOT_FOUND"},
		{"member_delete", member, http.MethodDelete, "/existing", "", http.StatusForbidden, "FORBIDDEN"},
		{"admin_delete_missing", admin, http.MethodDelete, "/ghost", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, service, tt.who, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, decode(t, recorder).Code)
		})
	}
}

/*
TestHandler_UpdateAndDelete covers the successful mutating paths.
*/
func TestHandler_UpdateAndDelete(t *testing.T) {
	service, _ := newService(t)
	mustCreate(t, service, "Draft", "Body")

	updated := serve(t, service, admin, http.MethodPut, "/draft", `{"title":"Final","body":"Done"}`)
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Contains(t, string(decode(t, updated).Data), `"slug":"final"`)

	deleted := serve(t, service, admin, http.MethodDelete, "/final", "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Empty(t, deleted.Body.String())

	_, err := service.FindBySlug(context.Background(), "final")
	assert.ErrorIs(t, err, post.ErrNotFound)
}

/*
TestHandler_List returns all posts or the recent subset.
*/
func TestHandler_List(t *testing.T) {
	service, _ := newService(t)

	empty := serve(t, service, sec.Anonymous, http.MethodGet, "/", "")
	assert.JSONEq(t, `{"data":[]}`, empty.Body.String())

	for _, title := range []string{"One", "Two", "Three", "Four"} {
		mustCreate(t, service, title, "Body")
	}

	var all, recent []map[string]any
	require.NoError(t, json.Unmarshal(decode(t, serve(t, service, sec.Anonymous, http.MethodGet, "/", "")).Data, &all))
	require.NoError(t, json.Unmarshal(decode(t, serve(t, service, sec.Anonymous, http.MethodGet, "/?recent=true", "")).Data, &recent))

	assert.Len(t, all, 4)
	require.Len(t, recent, 3)
	assert.Equal(t, "four", recent[0]["slug"])
}
