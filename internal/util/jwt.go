package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionUser is the identity carried by a session token.
type SessionUser struct {
	UserID   string `json:"usr_id"`
	UUID     string `json:"usr_uuid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Claims is the JWT payload.
type Claims struct {
	SessionUser
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for user. sessionID becomes the jti.
func GenerateToken(secret, issuer, sessionID string, user SessionUser, issuedAt time.Time, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := &Claims{
		SessionUser: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
