package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/association-api/internal/api/middleware"
)

// requireIdentity extracts the identity attached by the Auth middleware
// and fast-fails before any service call when it is absent. Handlers
// never re-derive identity from the token themselves — the gate is the
// only component allowed to populate it.
func requireIdentity(c echo.Context) (middleware.Identity, error) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok || id.SubjectID == "" {
		return middleware.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
