// Package auth issues and verifies the bearer tokens of the platform.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mediarate/mediarate/pkg/model"
)

// ErrInvalidToken is returned when a token cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

// Manager signs and parses HS256 JWTs carrying the user identity.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. ttl bounds how long issued
// tokens stay valid.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs a token for the given user.
func (m *Manager) Issue(u model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(u.ID, 10),
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Verify parses a token and returns the user id it was issued for.
func (m *Manager) Verify(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
