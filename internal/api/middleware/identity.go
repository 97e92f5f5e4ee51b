package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/campuslink/association-api/internal/core/domain"
)

// identityKey is the single context key under which the auth gate
// stores the resolved identity. Nothing else writes it.
const identityKey = "auth.identity"

// Identity is the request-scoped result of token verification: the
// subject id and the role snapshot taken at issuance. Its absence from
// the context means the request is anonymous.
type Identity struct {
	SubjectID string
	Roles     []domain.Role
}

// CurrentIdentity returns the identity attached by the Auth middleware.
// ok is false for anonymous requests or routes where the gate did not run.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func setIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}
