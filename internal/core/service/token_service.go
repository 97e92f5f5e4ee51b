package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuslink/association-api/internal/core/domain"
	"github.com/campuslink/association-api/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// tokenClaims is the signed payload: subject id in the registered
// claims, plus a snapshot of the user's roles at issuance.
type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService. The secret must be validated
// as non-empty at startup; an empty secret here is a programming error,
// not a per-request condition.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the user with expiry = now + TTL.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Roles: domain.RoleStrings(user.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates signature, structure, and expiry. Every failure mode
// collapses into ErrInvalidToken — callers never learn which check
// failed. Roles are trusted from the snapshot; a role change after
// issuance only takes effect once the holder logs in again.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	roles, err := domain.ParseRoles(claims.Roles)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	return &ports.TokenClaims{SubjectID: claims.Subject, Roles: roles}, nil
}
