package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrfuxi/gae-blog/internal/platform/ctxutil"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Auth verifies that claims and the derived identity travel together.
*/
func TestContext_Auth(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		UserID:   "user-123",
		Username: "alice",
		Role:     "admin",
	}

	// 1. Initially anonymous
	assert.Nil(t, ctxutil.GetClaims(ctx))
	assert.Equal(t, sec.Anonymous, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAuth(ctx, claims)

	assert.Same(t, claims, ctxutil.GetClaims(ctx))
	identity := ctxutil.GetIdentity(ctx)
	assert.Equal(t, "alice", identity.Name)
	assert.True(t, identity.IsAdmin())
}
