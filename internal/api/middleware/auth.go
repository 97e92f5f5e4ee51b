package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/association-api/internal/api/metrics"
	"github.com/campuslink/association-api/internal/core/ports"
)

// Auth is the authentication gate: it extracts the bearer token,
// verifies it, and attaches the resolved Identity to the request
// context. Verification is a pure computation — no store access. Every
// failure mode is a uniform 401 so the response never reveals whether
// the header was absent, malformed, tampered, or expired.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			setIdentity(c, Identity{SubjectID: claims.SubjectID, Roles: claims.Roles})
			return next(c)
		}
	}
}
