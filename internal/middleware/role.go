package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  It assumes JWTAuth
// has already run.  Anything else is answered with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id == nil || !allowed[id.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
