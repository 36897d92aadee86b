package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/utils"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// whoami echoes the identity placed on the context.
func whoami(c echo.Context) error {
	id := IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusOK, echo.Map{"anonymous": true})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": id.UserID, "role": id.Role})
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", whoami, JWTAuth(testSecret))

	good, err := utils.NewAccessToken(testSecret, 7, model.RoleCustomer, time.Minute)
	require.NoError(t, err)
	numericSub := sign(t, jwt.MapClaims{"sub": 9, "role": "admin", "exp": time.Now().Add(time.Minute).Unix()}, testSecret)
	expired := sign(t, jwt.MapClaims{"sub": "7", "role": "customer", "exp": time.Now().Add(-time.Minute).Unix()}, testSecret)
	noExp := sign(t, jwt.MapClaims{"sub": "7", "role": "customer"}, testSecret)
	badRole := sign(t, jwt.MapClaims{"sub": "7", "role": "root", "exp": time.Now().Add(time.Minute).Unix()}, testSecret)
	otherSecret := sign(t, jwt.MapClaims{"sub": "7", "role": "customer", "exp": time.Now().Add(time.Minute).Unix()}, "other")

	rec := serve(e, http.MethodGet, "/me", good.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"customer"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/me", numericSub)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":9,"role":"admin"}`, rec.Body.String())

	for name, tok := range map[string]string{
		"missing":      "",
		"expired":      expired,
		"no exp":       noExp,
		"unknown role": badRole,
		"wrong secret": otherSecret,
		"garbage":      "not.a.jwt",
	} {
		rec := serve(e, http.MethodGet, "/me", tok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestOptionalJWT(t *testing.T) {
	e := echo.New()
	e.GET("/maybe", whoami, OptionalJWT(testSecret))

	rec := serve(e, http.MethodGet, "/maybe", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"anonymous":true}`, rec.Body.String())

	good, err := utils.NewAccessToken(testSecret, 3, model.RoleHallOwner, time.Minute)
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/maybe", good.Token)
	assert.JSONEq(t, `{"user_id":3,"role":"hall_owner"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/maybe", "broken")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/admin", whoami, JWTAuth(testSecret), RequireRole(model.RoleAdmin))

	admin, err := utils.NewAccessToken(testSecret, 1, model.RoleAdmin, time.Minute)
	require.NoError(t, err)
	customer, err := utils.NewAccessToken(testSecret, 2, model.RoleCustomer, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/admin", admin.Token).Code)
	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodGet, "/admin", customer.Token).Code)
}
