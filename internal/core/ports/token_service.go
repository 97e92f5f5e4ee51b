package ports

import "github.com/campuslink/association-api/internal/core/domain"

// TokenClaims is the verified content of a bearer token: the subject id
// and the role set snapshotted at issuance.
type TokenClaims struct {
	SubjectID string
	Roles     []domain.Role
}

// TokenService signs and verifies bearer tokens. Verify is a pure
// computation over the token string — it never consults the store, so
// role changes made after issuance only take effect on re-login.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*TokenClaims, error)
}
