// Package token issues and verifies the signed, time-limited tokens embedded
// in verification and resend-confirmation links.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid is returned for malformed or tampered tokens.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned when the token signature is fine but the
	// expiry has passed.
	ErrExpired = errors.New("token expired")
)

// Claims carries the email the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Service signs and verifies HS256 tokens with a shared secret.
type Service struct {
	secret []byte
}

// NewService creates a token service. An empty secret is a configuration
// error and fatal at startup.
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	return &Service{secret: []byte(secret)}, nil
}

// Issue creates a signed token carrying the email, valid for ttl.
func (s *Service) Issue(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})
	return tok.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
// It has no side effects; tokens are stateless and not persisted.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
