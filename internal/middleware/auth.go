package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"site_cms/internal/lib/jwt"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

type RoleChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AdminOnly admits requests carrying a valid bearer token of a user with the admin role.
// The role lookup is bounded by timeout and cancelled together with the request.
func AdminOnly(log *slog.Logger, secret string, roles RoleChecker, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const op = "middleware.AdminOnly"

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
			}

			claims, err := jwt.ParseToken(strings.TrimSpace(token), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("invalid_token", err.Error()))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			isAdmin, err := roles.IsAdmin(ctx, claims.UserID)
			if err != nil {
				log.Warn("admin verification failed",
					slog.String("op", op),
					slog.String("user_id", claims.UserID.String()),
					sl.Err(err),
				)
				if errors.Is(err, context.DeadlineExceeded) {
					return c.JSON(http.StatusServiceUnavailable, response.ErrVerificationTimeout)
				}
				return c.JSON(http.StatusInternalServerError, response.ErrVerificationFailed)
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, response.ErrAdminRequired)
			}

			c.Set(userIDKey, claims.UserID)

			return next(c)
		}
	}
}

// UserID returns the admin user admitted by AdminOnly.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userIDKey).(uuid.UUID)
	return id, ok
}
