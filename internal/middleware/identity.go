package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// IdentityFrom returns the identity stored by JWTAuth or OptionalJWT, or
// nil for anonymous requests.
func IdentityFrom(c echo.Context) *model.Identity {
	if id, ok := c.Get(ContextIdentity).(*model.Identity); ok {
		return id
	}
	return nil
}

// currentUserID returns the caller's user id as a string for use in Redis
// keys, or "anon" when no identity is attached.
func currentUserID(c echo.Context) string {
	if id := IdentityFrom(c); id != nil {
		return strconv.FormatUint(id.UserID, 10)
	}
	return "anon"
}
