// This file implements persistence for role assignments. The effective
// permission level of a user is always whatever the current row says; it is
// looked up fresh whenever a session is resolved or a staff route is hit and
// is never derived from token claims. A user without a row has the implicit
// "user" role, signalled to callers by ErrNoAssignment.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

// RoleRepo persists rows of the `role_assignments` table.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// GetForUser returns the role assignment for a user. Returns ErrNoAssignment
// when no row exists; any other error is a genuine lookup failure.
func (r *RoleRepo) GetForUser(ctx context.Context, userID uint64) (model.RoleAssignment, error) {
	var a model.RoleAssignment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,role,created_at,updated_at FROM role_assignments WHERE user_id=? LIMIT 1",
		userID).Scan(&a.ID, &a.UserID, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RoleAssignment{}, ErrNoAssignment
	}
	return a, err
}

// Upsert creates or replaces the single assignment row for a user. The
// UNIQUE(user_id) constraint guarantees at most one row per user.
func (r *RoleRepo) Upsert(ctx context.Context, userID uint64, role string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO role_assignments (user_id, role) VALUES (?,?) ON DUPLICATE KEY UPDATE role=VALUES(role), updated_at=NOW()",
		userID, role)
	return err
}

// Remove deletes the assignment row for a user, reverting them to the
// implicit "user" role. Removing a row that does not exist is not an error.
func (r *RoleRepo) Remove(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM role_assignments WHERE user_id=?", userID)
	return err
}

// ListAll returns every assignment row, used by the settings screen to
// decorate the user list with roles.
func (r *RoleRepo) ListAll(ctx context.Context) ([]model.RoleAssignment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,role,created_at,updated_at FROM role_assignments")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RoleAssignment{}
	for rows.Next() {
		var a model.RoleAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Role, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
