// Package token implements signing and verification of bearer tokens.
//
// A single Signer instance is shared by the issuing side (login) and every
// verifying surface (the authenticate middleware and any edge layer), so
// secret or algorithm drift between surfaces is impossible.
package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "go-shooter-portal"

// Claims represents the token payload. Roles are asserted at issue time
// and are not re-derived from the database per request; a role change
// takes effect at the next login.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 signed tokens with a shared secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer. The secret must not be empty; config
// validation guarantees that before the process starts serving.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	return &Signer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given user id, email and role names.
func (s *Signer) Issue(userID uint64, email string, roles []string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Email: email,
		Roles: dedupeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   formatSubject(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks signature, method, expiry and issuer, and returns the claims.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != issuer || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}

	claims.Roles = dedupeRoles(claims.Roles)

	return claims, nil
}

// UserID parses the numeric subject claim.
func (c *Claims) UserID() (uint64, error) {
	return parseSubject(c.Subject)
}

func dedupeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))

	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}

		if _, ok := seen[role]; ok {
			continue
		}

		seen[role] = struct{}{}
		out = append(out, role)
	}

	return out
}
