// Package utils holds helpers shared by the server commands.
package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// AccessToken is a signed JWT together with its expiry.
type AccessToken struct {
	Token string    `json:"access_token"`
	Exp   time.Time `json:"expires_at"`
}

// NewAccessToken signs an HS256 token for userID with the given role.
// Production tokens come from the identity provider; this mints tokens
// with the same claim layout for development and tests.  The subject is
// encoded as a decimal string.
func NewAccessToken(secret string, userID uint64, role model.Role, ttl time.Duration) (AccessToken, error) {
	if secret == "" {
		return AccessToken{}, errors.New("empty signing secret")
	}
	if userID == 0 || !role.Valid() {
		return AccessToken{}, errors.New("user id and a known role are required")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(userID, 10),
		"role": string(role),
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
		"jti":  uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
