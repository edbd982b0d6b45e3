package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/models"
)

// ModeratorMiddleware gates a route group on the moderator role claim.
// Runs after JWTAuthMiddleware. The claim can be stale after a role
// change, so the moderation service re-checks against the store.
func ModeratorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get("identity").(*models.UserIdentity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if identity.Role != models.RoleModerator {
				return echo.NewHTTPError(http.StatusForbidden, "moderator role required")
			}
			return next(c)
		}
	}
}
