package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into application errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	assert.ErrorIs(t, dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "find post"), dberr.ErrNotFound)

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.ErrorIs(t, dberr.Wrap(unique, "create account"), dberr.ErrDuplicate)

	wrapped := dberr.Wrap(errors.New("connection refused"), "scan posts")
	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	assert.Contains(t, ae.Cause.Error(), "scan posts")
}
