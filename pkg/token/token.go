package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager issues and validates signed access tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
}

// NewManager creates a token manager with the given HMAC secret and
// access-token lifetime.
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry}
}

// Generate creates a signed token carrying the user ID as its subject.
func (m *Manager) Generate(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": now.Add(m.expiry).Unix(),
		"iat": now.Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate parses the token and returns the user ID it was issued for.
func (m *Manager) Validate(tokenString string) (uint, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return 0, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("invalid token: subject claim missing")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}

	return uint(userID), nil
}

// Expiry returns the configured access-token lifetime.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}
