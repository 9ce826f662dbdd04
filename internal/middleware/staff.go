package middleware

// Staff gating. A user's permission level is whatever the current
// role_assignments row says at the moment of the request: the lookup runs
// fresh every time, is never read from token claims, and any lookup failure
// denies access (a staff permission is never granted while its confirmation
// is uncertain).

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// RequireRole returns a middleware that loads the requester's current role
// assignment and rejects the request unless the resolved role is in the
// allowed set. It assumes JWTAuth has stored "user_id" in the context. The
// resolved role is stored under "role" for downstream handlers.
//
// No assignment row resolves to model.RoleUser; a failed lookup resolves to
// nothing and is rejected outright.
func RequireRole(roles *repository.RoleRepo, allowed ...string) echo.MiddlewareFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("user_id").(uint64)
			if !ok || uid == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			role := model.RoleUser
			a, err := roles.GetForUser(c.Request().Context(), uid)
			switch {
			case err == nil:
				role = a.Role
			case errors.Is(err, repository.ErrNoAssignment):
				// implicit "user" role
			default:
				// Fail closed: an uncertain role never passes a gate.
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}

			if !allowedSet[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			c.Set("role", role)
			return next(c)
		}
	}
}

// RequireStaff allows admins and assistants through.
func RequireStaff(roles *repository.RoleRepo) echo.MiddlewareFunc {
	return RequireRole(roles, model.RoleAdmin, model.RoleAssistant)
}

// RequireAdmin allows only admins through (settings endpoints).
func RequireAdmin(roles *repository.RoleRepo) echo.MiddlewareFunc {
	return RequireRole(roles, model.RoleAdmin)
}
