package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("s3cret", 42, model.RoleHallOwner, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "hall_owner", claims["role"])
	assert.NotEmpty(t, claims["jti"])
}

func TestNewAccessToken_Rejects(t *testing.T) {
	_, err := NewAccessToken("", 1, model.RoleCustomer, time.Minute)
	assert.Error(t, err)
	_, err = NewAccessToken("x", 0, model.RoleCustomer, time.Minute)
	assert.Error(t, err)
	_, err = NewAccessToken("x", 1, model.Role("root"), time.Minute)
	assert.Error(t, err)
}
