package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rivieraprestige/concierge-api/internal/session"
)

// testServer fakes the /v1/auth surface with one known account.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "staff@example.com" || body.Password != "Correct1!" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":    map[string]any{"id": 7, "email": body.Email, "display_name": "Staff"},
			"access":  map[string]any{"token": "acc-1", "expires": "2026-08-29T12:00:00Z"},
			"refresh": map[string]any{"token": "ref-1", "expires": "2026-09-29T12:00:00Z"},
		})
	})

	mux.HandleFunc("GET /v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": 7, "email": "staff@example.com"},
			"role": "assistant",
		})
	})

	mux.HandleFunc("POST /v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSignInNotifiesSubscribers(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())

	var mu sync.Mutex
	var gotSess *session.Session
	var gotUser *session.User
	unsub := c.Subscribe(func(s *session.Session, u *session.User) {
		mu.Lock()
		gotSess, gotUser = s, u
		mu.Unlock()
	})
	defer unsub()

	require.NoError(t, c.SignIn(context.Background(), "staff@example.com", "Correct1!"))

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, gotSess)
	require.Equal(t, "acc-1", gotSess.AccessToken)
	require.Equal(t, "ref-1", gotSess.RefreshToken)
	require.Equal(t, uint64(7), gotUser.ID)

	sess, user, err := c.CurrentSession(context.Background())
	require.NoError(t, err)
	require.Equal(t, gotSess, sess)
	require.Equal(t, gotUser, user)
}

func TestClientSignInRejected(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())

	err := c.SignIn(context.Background(), "staff@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	sess, _, _ := c.CurrentSession(context.Background())
	require.Nil(t, sess)
}

func TestClientLookupRole(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())
	require.NoError(t, c.SignIn(context.Background(), "staff@example.com", "Correct1!"))

	sess, _, _ := c.CurrentSession(context.Background())
	role, err := c.LookupRole(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, "assistant", role)
}

func TestClientLookupRoleBadToken(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())

	_, err := c.LookupRole(context.Background(), &session.Session{AccessToken: "stale"})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientSignOutClearsAndNotifies(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())
	require.NoError(t, c.SignIn(context.Background(), "staff@example.com", "Correct1!"))

	var mu sync.Mutex
	cleared := false
	unsub := c.Subscribe(func(s *session.Session, u *session.User) {
		mu.Lock()
		cleared = s == nil && u == nil
		mu.Unlock()
	})
	defer unsub()

	require.NoError(t, c.SignOut(context.Background()))

	mu.Lock()
	require.True(t, cleared)
	mu.Unlock()

	sess, user, err := c.CurrentSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, sess)
	require.Nil(t, user)
}

func TestClientSignOutWithoutSession(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())
	require.NoError(t, c.SignOut(context.Background()))
}

func TestClientWorksWithResolver(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, srv.Client())
	r := session.NewResolver(c)
	defer r.Close()

	require.NoError(t, r.SignIn(context.Background(), "staff@example.com", "Correct1!"))

	require.Eventually(t, func() bool {
		s := r.Snapshot()
		return s.SignedIn() && s.IsAssistant()
	}, 3*time.Second, 5*time.Millisecond)
	require.True(t, r.Snapshot().HasStaffAccess())

	require.NoError(t, r.SignOut(context.Background()))
	require.False(t, r.Snapshot().SignedIn())
}
