package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"site_cms/internal/lib/jwt"
	"site_cms/internal/lib/logger/handlers/slogdiscard"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockRoleChecker struct {
	mock.Mock
}

func (m *MockRoleChecker) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type slowRoleChecker struct{}

func (slowRoleChecker) IsAdmin(ctx context.Context, _ uuid.UUID) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func serve(t *testing.T, roles RoleChecker, timeout time.Duration, authHeader string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()

	e := echo.New()
	var seen uuid.UUID
	handler := AdminOnly(slogdiscard.NewDiscardLogger(), testSecret, roles, timeout)(func(c echo.Context) error {
		seen, _ = UserID(c)
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/posts", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec, seen
}

func TestAdminOnly(t *testing.T) {
	userID := uuid.New()
	token, err := jwt.NewToken(userID, "admin@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("admin admitted", func(t *testing.T) {
		roles := new(MockRoleChecker)
		roles.On("IsAdmin", mock.Anything, userID).Return(true, nil)

		rec, seen := serve(t, roles, time.Second, "Bearer "+token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, seen)
	})

	t.Run("missing token", func(t *testing.T) {
		rec, _ := serve(t, new(MockRoleChecker), time.Second, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		other, err := jwt.NewToken(userID, "admin@example.com", "other", time.Hour)
		require.NoError(t, err)

		rec, _ := serve(t, new(MockRoleChecker), time.Second, "Bearer "+other)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not an admin", func(t *testing.T) {
		roles := new(MockRoleChecker)
		roles.On("IsAdmin", mock.Anything, userID).Return(false, nil)

		rec, _ := serve(t, roles, time.Second, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("lookup error", func(t *testing.T) {
		roles := new(MockRoleChecker)
		roles.On("IsAdmin", mock.Anything, userID).Return(false, errors.New("db down"))

		rec, _ := serve(t, roles, time.Second, "Bearer "+token)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("lookup times out", func(t *testing.T) {
		rec, _ := serve(t, slowRoleChecker{}, 20*time.Millisecond, "Bearer "+token)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
