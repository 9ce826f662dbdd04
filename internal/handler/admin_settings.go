package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// userWithRole is the settings screen's view of a user: the account row
// decorated with the effective role. Users without an assignment row show
// the implicit "user" role.
type userWithRole struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

// ListUsers handles GET /v1/admin/settings/users. Admin only.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	assignments, err := h.Roles.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	roleByUser := make(map[uint64]string, len(assignments))
	for _, a := range assignments {
		roleByUser[a.UserID] = a.Role
	}

	out := make([]userWithRole, 0, len(users))
	for _, u := range users {
		role := roleByUser[u.ID]
		if role == "" {
			role = model.RoleUser
		}
		out = append(out, userWithRole{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			IsActive:    u.IsActive,
			Role:        role,
			CreatedAt:   u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// AssignRole handles PUT /v1/admin/settings/users/:id/role with body
// {"role": "admin"|"assistant"}. Assigning "user" is expressed by removing
// the row instead, so the table only ever holds staff assignments.
func (h *AdminHandler) AssignRole(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.StaffRole(body.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or assistant"})
	}

	ctx := c.Request().Context()
	target, err := h.Users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// An admin demoting themself to assistant would lock everyone out of
	// this screen if they are the last admin standing.
	actorID, _ := getUserID(c)
	if targetID == actorID && body.Role != model.RoleAdmin {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot change your own role"})
	}

	if err := h.Roles.Upsert(ctx, targetID, body.Role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	h.recordActivity(c, "role.assign", "user", targetID, map[string]string{
		"email": target.Email,
		"role":  body.Role,
	})
	return c.NoContent(http.StatusNoContent)
}

// RemoveRole handles DELETE /v1/admin/settings/users/:id/role, reverting the
// user to the implicit "user" role.
func (h *AdminHandler) RemoveRole(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	actorID, _ := getUserID(c)
	if targetID == actorID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot change your own role"})
	}

	ctx := c.Request().Context()
	details := map[string]string{}
	if target, err := h.Users.GetByID(ctx, targetID); err == nil {
		details["email"] = target.Email
	} else if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if a, err := h.Roles.GetForUser(ctx, targetID); err == nil {
		details["role"] = a.Role
	} else if errors.Is(err, repository.ErrNoAssignment) {
		// Already the implicit role; removal is a no-op but not an error.
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.Roles.Remove(ctx, targetID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	h.recordActivity(c, "role.remove", "user", targetID, details)
	return c.NoContent(http.StatusNoContent)
}
