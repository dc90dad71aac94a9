package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// PurposeSession tokens live in the session cookie and carry a session row id.
	PurposeSession = "session"
	// PurposeState tokens round-trip through the OAuth redirect as the state parameter.
	PurposeState = "state"
)

type claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token binding a subject to a purpose for ttl.
func SignToken(subject, purpose, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseToken verifies signature, expiry, and purpose, returning the subject.
func ParseToken(token, purpose, secret string) (string, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if c.Purpose != purpose {
		return "", fmt.Errorf("token purpose mismatch: %q", c.Purpose)
	}
	return c.Subject, nil
}
