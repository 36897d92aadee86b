package middleware // middleware contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// Context keys populated by JWTAuth and OptionalJWT.
const (
	ContextUserID   = "user_id"
	ContextRole     = "role"
	ContextIdentity = "identity"
)

var errInvalidClaims = errors.New("invalid claims")

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the caller's identity into the request context.  The provided
// secret must match the one used when issuing tokens.  Requests without a
// valid token are rejected with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			id, err := ParseIdentity(raw, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setIdentity(c, id)
			return next(c)
		}
	}
}

// OptionalJWT is JWTAuth for endpoints that also serve anonymous callers.
// A missing Authorization header passes through without an identity; a
// present but invalid token is still rejected so that clients notice
// expired sessions instead of silently acting as guests.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			raw, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			id, err := ParseIdentity(raw, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setIdentity(c, id)
			return next(c)
		}
	}
}

// ParseIdentity verifies an HS256 token and extracts the subject and role
// claims.  The subject may be encoded as a JSON string or number.
func ParseIdentity(raw, secret string) (*model.Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject anything that is not HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errInvalidClaims
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	var uid uint64
	switch sub := claims["sub"].(type) {
	case string:
		uid, err = strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return nil, errInvalidClaims
		}
	case float64:
		if sub < 1 || sub != float64(uint64(sub)) {
			return nil, errInvalidClaims
		}
		uid = uint64(sub)
	default:
		return nil, errInvalidClaims
	}
	if uid == 0 {
		return nil, errInvalidClaims
	}

	roleStr, _ := claims["role"].(string)
	role := model.Role(roleStr)
	if !role.Valid() {
		return nil, errInvalidClaims
	}
	return &model.Identity{UserID: uid, Role: role}, nil
}

func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}

func setIdentity(c echo.Context, id *model.Identity) {
	c.Set(ContextIdentity, id)
	c.Set(ContextUserID, id.UserID)
	c.Set(ContextRole, string(id.Role))
}
