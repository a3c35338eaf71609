package stub

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"esplan/internal/sentinel"
	"esplan/internal/session"
)

// TokenService issues and validates the stub's HS256 bearer tokens.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService builds a token service over a shared signing key.
func NewTokenService(key string, ttl time.Duration) *TokenService {
	return &TokenService{key: []byte(key), ttl: ttl}
}

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for a profile. The jti goes to the revocation list on
// logout.
func (t *TokenService) Issue(p session.Profile) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Issuer:    "esplan-stub",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the subject and token id.
func (t *TokenService) Validate(raw string) (subject, jti string, err error) {
	var claims accessClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", sentinel.ErrExpired
		}
		return "", "", fmt.Errorf("invalid token: %w", sentinel.ErrInvalidState)
	}
	return claims.Subject, claims.ID, nil
}
