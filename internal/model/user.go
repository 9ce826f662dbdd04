package model

import "time"

// Role names form a closed set. A user with no assignment row is treated as
// RoleUser; the database never stores an explicit "user" assignment.
const (
	RoleAdmin     = "admin"
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// ValidRole reports whether name belongs to the closed role set.
func ValidRole(name string) bool {
	return name == RoleAdmin || name == RoleAssistant || name == RoleUser
}

// StaffRole reports whether name grants back-office access.
func StaffRole(name string) bool {
	return name == RoleAdmin || name == RoleAssistant
}

// User represents an application user record as stored in the `users` table.
// The identifier is immutable for the lifetime of the account. Permission
// level is never stored here; it lives in the role_assignments table so that
// an admin's change takes effect without reissuing the user's tokens.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique, stored lowercase)
	PasswordHash string    // users.password_hash (bcrypt)
	DisplayName  string    // users.display_name (optional)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RoleAssignment associates a user with exactly one role from the closed set.
// At most one row exists per user; absence of a row means the implicit "user"
// role. Managed by admins through the settings endpoints.
type RoleAssignment struct {
	ID        uint64    // role_assignments.id
	UserID    uint64    // role_assignments.user_id (unique)
	Role      string    // role_assignments.role (admin|assistant)
	CreatedAt time.Time // role_assignments.created_at
	UpdatedAt time.Time // role_assignments.updated_at
}

// RefreshToken models a row in the `refresh_tokens` table. The raw token is
// never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
