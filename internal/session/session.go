// Package session resolves the effective identity and permission level of
// the back-office user. The permission level is never taken from a token or
// a cached snapshot: every time the session changes, the role is looked up
// fresh from the server, and any failure along the way degrades to the
// lowest-privilege role rather than surfacing a partial state.
package session

import (
	"context"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

// User is the identity half of a resolved session.
type User struct {
	ID          uint64
	Email       string
	DisplayName string
}

// Session carries the credentials half. AccessToken is opaque to this
// package; it is only compared for equality to detect session changes.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Snapshot is one consistent view of the resolver's state. Zero value means
// signed out with the implicit "user" role.
type Snapshot struct {
	User    *User
	Session *Session
	Role    string
	Loading bool
}

// IsAdmin reports whether the snapshot grants full administrative access.
func (s Snapshot) IsAdmin() bool { return s.Role == model.RoleAdmin }

// IsAssistant reports whether the snapshot grants the assistant role.
func (s Snapshot) IsAssistant() bool { return s.Role == model.RoleAssistant }

// HasStaffAccess reports whether the snapshot may enter the back office at
// all. False while Loading so gated screens stay hidden until resolution
// completes.
func (s Snapshot) HasStaffAccess() bool {
	return !s.Loading && model.StaffRole(s.Role)
}

// SignedIn reports whether a session is present.
func (s Snapshot) SignedIn() bool { return s.Session != nil }

// AuthBackend is everything the resolver needs from the auth layer. The
// HTTP client in the backoffice package implements it; tests use a fake.
type AuthBackend interface {
	// Subscribe registers a callback invoked on every session change
	// (sign-in, sign-out, token refresh). The callback must return
	// quickly and must not call back into the backend; the returned
	// function cancels the subscription.
	Subscribe(fn func(sess *Session, user *User)) (unsubscribe func())

	// CurrentSession returns the session that already exists when the
	// resolver starts, or nil when signed out.
	CurrentSession(ctx context.Context) (*Session, *User, error)

	// LookupRole fetches the effective role for the given session from
	// the server. It must never answer from a token claim.
	LookupRole(ctx context.Context, sess *Session) (string, error)

	SignUp(ctx context.Context, email, password, displayName string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
}
