package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
	"github.com/mrfuxi/gae-blog/internal/users/auth"
)

// fakeUsers is an in-memory [auth.UserRepository].
type fakeUsers struct {
	mu      sync.Mutex
	byName  map[string]*auth.User
	updates int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: make(map[string]*auth.User)}
}

func (users *fakeUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	users.mu.Lock()
	defer users.mu.Unlock()
	user, ok := users.byName[username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (users *fakeUsers) Create(_ context.Context, user *auth.User) error {
	users.mu.Lock()
	defer users.mu.Unlock()
	copied := *user
	users.byName[user.Username] = &copied
	return nil
}

func (users *fakeUsers) UpdateCredentials(_ context.Context, id, passwordHash string, role string) error {
	users.mu.Lock()
	defer users.mu.Unlock()
	for _, user := range users.byName {
		if user.ID == id {
			user.PasswordHash = passwordHash
			user.Role = sec.UserRole(role)
			users.updates++
			return nil
		}
	}
	return dberr.ErrNotFound
}

// fakeRevocations is an in-memory [auth.RevocationRepository].
type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	fail    error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Duration)}
}

func (revocations *fakeRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	revocations.mu.Lock()
	defer revocations.mu.Unlock()
	if revocations.fail != nil {
		return revocations.fail
	}
	revocations.revoked[tokenID] = ttl
	return nil
}

func (revocations *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	revocations.mu.Lock()
	defer revocations.mu.Unlock()
	if revocations.fail != nil {
		return false, revocations.fail
	}
	_, ok := revocations.revoked[tokenID]
	return ok, nil
}

type fixture struct {
	service     *auth.Service
	users       *fakeUsers
	revocations *fakeRevocations
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	users, revocations := newFakeUsers(), newFakeRevocations()
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "blog.test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := auth.NewService(users, revocations, tokens, logger)
	require.NoError(t, service.EnsureAdmin(context.Background(), "admin", "s3cret"))

	return fixture{service: service, users: users, revocations: revocations}
}

/*
TestEnsureAdmin_CreatesOnce bootstraps the account and stays idempotent.
*/
func TestEnsureAdmin_CreatesOnce(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, user.Role)
	assert.True(t, sec.CheckPasswordHash("s3cret", user.PasswordHash))

	require.NoError(t, f.service.EnsureAdmin(context.Background(), "admin", "s3cret"))
	assert.Equal(t, 0, f.users.updates)
}

/*
TestEnsureAdmin_RefreshesPasswordAndRole applies configuration changes.
*/
func TestEnsureAdmin_RefreshesPasswordAndRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.service.EnsureAdmin(ctx, "admin", "rotated"))
	user, _ := f.users.FindByUsername(ctx, "admin")
	assert.True(t, sec.CheckPasswordHash("rotated", user.PasswordHash))

	// A demoted account is promoted back
	require.NoError(t, f.users.UpdateCredentials(ctx, user.ID, user.PasswordHash, string(sec.RoleMember)))
	require.NoError(t, f.service.EnsureAdmin(ctx, "admin", "rotated"))
	user, _ = f.users.FindByUsername(ctx, "admin")
	assert.Equal(t, sec.RoleAdmin, user.Role)

	assert.Error(t, f.service.EnsureAdmin(ctx, "", "x"))
}

/*
TestEnsureAdmin_UpgradesHashCost rehashes an admin password stored at another cost.
*/
func TestEnsureAdmin_UpgradesHashCost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, _ := f.users.FindByUsername(ctx, "admin")
	weak, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.users.UpdateCredentials(ctx, user.ID, string(weak), string(sec.RoleAdmin)))

	require.NoError(t, f.service.EnsureAdmin(ctx, "admin", "s3cret"))

	user, _ = f.users.FindByUsername(ctx, "admin")
	assert.NotEqual(t, string(weak), user.PasswordHash)
	assert.False(t, sec.NeedsRehash(user.PasswordHash))
	assert.True(t, sec.CheckPasswordHash("s3cret", user.PasswordHash))
}

/*
TestEnsureAdmin_RejectsOverlongPassword fails startup instead of truncating.
*/
func TestEnsureAdmin_RejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)

	err := f.service.EnsureAdmin(context.Background(), "root", strings.Repeat("p", sec.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

/*
TestLogin covers success and the indistinguishable failure cases.
*/
func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	session, err := f.service.Login(ctx, " admin ", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "admin", session.User.Username)

	claims, err := f.service.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.True(t, sec.IdentityFromClaims(claims).IsAdmin())

	_, err = f.service.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, "", "")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
}

/*
TestLogout_RevokesToken makes the token unusable for the rest of its life.
*/
func TestLogout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	session, err := f.service.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	claims, err := f.service.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, claims))

	_, err = f.service.VerifyToken(ctx, session.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	ttl := f.revocations.revoked[claims.ID]
	assert.Greater(t, ttl, auth.AccessTokenTTL-time.Minute)
	assert.LessOrEqual(t, ttl, auth.AccessTokenTTL)

	// A second login is unaffected
	other, err := f.service.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	_, err = f.service.VerifyToken(ctx, other.AccessToken)
	assert.NoError(t, err)
}

/*
TestLogout_Edges ignores missing claims and reports store failures.
*/
func TestLogout_Edges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.NoError(t, f.service.Logout(ctx, nil))

	session, err := f.service.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	claims, err := f.service.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)

	f.revocations.fail = errors.New("redis down")
	err = f.service.Logout(ctx, claims)
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)

	// Verification fails closed while the revocation store is down
	_, err = f.service.VerifyToken(ctx, session.AccessToken)
	assert.Error(t, err)
}
