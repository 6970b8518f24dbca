// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/guiaemprende/backend/internal/database"
	"github.com/guiaemprende/backend/internal/models"
	"github.com/guiaemprende/backend/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user in the database.
func NewTestUser(t *testing.T, repo *repository.Repository, nombre, email string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), nombre, email)
	require.NoError(t, err)
	return user
}

// NewVerifiedUser creates a test user and marks it verified.
func NewVerifiedUser(t *testing.T, repo *repository.Repository, nombre, email string) *models.User {
	t.Helper()
	user := NewTestUser(t, repo, nombre, email)
	require.NoError(t, repo.MarkUserVerified(context.Background(), user.ID))
	user.IsVerified = true
	return user
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
