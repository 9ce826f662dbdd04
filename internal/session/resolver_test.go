package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

// ---- fake backend ----

type fakeBackend struct {
	mu   sync.Mutex
	subs map[int]func(*Session, *User)
	next int

	currentSess *Session
	currentUser *User
	currentErr  error
	currentGate chan struct{} // when set, CurrentSession blocks until closed

	roleByToken map[string]string
	roleErr     error
	lookupGate  chan struct{} // when set, LookupRole blocks until closed
	lookups     int

	signOuts int
	unsubs   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		subs:        map[int]func(*Session, *User){},
		roleByToken: map[string]string{},
	}
}

func (f *fakeBackend) Subscribe(fn func(*Session, *User)) func() {
	f.mu.Lock()
	f.next++
	id := f.next
	f.subs[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.unsubs++
		f.mu.Unlock()
	}
}

// emit delivers a session change to subscribers the way a real backend
// would: synchronously, on the caller's goroutine.
func (f *fakeBackend) emit(sess *Session, user *User) {
	f.mu.Lock()
	fns := make([]func(*Session, *User), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(sess, user)
	}
}

func (f *fakeBackend) CurrentSession(ctx context.Context) (*Session, *User, error) {
	f.mu.Lock()
	gate := f.currentGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentSess, f.currentUser, f.currentErr
}

func (f *fakeBackend) LookupRole(ctx context.Context, sess *Session) (string, error) {
	f.mu.Lock()
	f.lookups++
	gate := f.lookupGate
	role := f.roleByToken[sess.AccessToken]
	err := f.roleErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (f *fakeBackend) SignUp(context.Context, string, string, string) error { return nil }
func (f *fakeBackend) SignIn(context.Context, string, string) error         { return nil }

func (f *fakeBackend) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOuts++
	f.mu.Unlock()
	return nil
}

func staffSession(token string) (*Session, *User) {
	return &Session{AccessToken: token, RefreshToken: "r-" + token},
		&User{ID: 7, Email: "staff@example.com"}
}

func waitFor(t *testing.T, r *Resolver, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		s := r.Snapshot()
		if cond(s) {
			return s
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached; last snapshot: %+v", r.Snapshot())
	return Snapshot{}
}

// ---- tests ----

func TestResolverSignedOutResolvesImmediately(t *testing.T) {
	b := newFakeBackend()
	r := NewResolver(b)
	defer r.Close()

	s := waitFor(t, r, func(s Snapshot) bool { return !s.Loading })
	require.False(t, s.SignedIn())
	require.Equal(t, model.RoleUser, s.Role)
	require.False(t, s.HasStaffAccess())
}

func TestResolverResolvesExistingSession(t *testing.T) {
	b := newFakeBackend()
	sess, user := staffSession("tok-1")
	b.currentSess, b.currentUser = sess, user
	b.roleByToken["tok-1"] = model.RoleAdmin

	r := NewResolver(b)
	defer r.Close()

	s := waitFor(t, r, func(s Snapshot) bool { return !s.Loading && s.IsAdmin() })
	require.True(t, s.SignedIn())
	require.True(t, s.HasStaffAccess())
	require.Equal(t, "staff@example.com", s.User.Email)
}

func TestResolverResolvesRoleAfterSignIn(t *testing.T) {
	b := newFakeBackend()
	r := NewResolver(b)
	defer r.Close()
	waitFor(t, r, func(s Snapshot) bool { return !s.Loading })

	b.roleByToken["tok-2"] = model.RoleAssistant
	b.emit(staffSession("tok-2"))

	s := waitFor(t, r, func(s Snapshot) bool { return s.IsAssistant() })
	require.True(t, s.HasStaffAccess())
	require.False(t, s.IsAdmin())
}

func TestResolverFailsClosedOnLookupError(t *testing.T) {
	b := newFakeBackend()
	b.roleErr = errors.New("boom")
	sess, user := staffSession("tok-3")
	b.currentSess, b.currentUser = sess, user

	r := NewResolver(b)
	defer r.Close()

	s := waitFor(t, r, func(s Snapshot) bool { return !s.Loading && s.SignedIn() })
	require.Equal(t, model.RoleUser, s.Role)
	require.False(t, s.HasStaffAccess())
}

func TestResolverFailsClosedOnUnknownRole(t *testing.T) {
	b := newFakeBackend()
	sess, user := staffSession("tok-4")
	b.currentSess, b.currentUser = sess, user
	b.roleByToken["tok-4"] = "superuser" // not in the closed set

	r := NewResolver(b)
	defer r.Close()

	s := waitFor(t, r, func(s Snapshot) bool { return !s.Loading && s.SignedIn() })
	require.Equal(t, model.RoleUser, s.Role)
}

func TestResolverNotificationCallbackNeverBlocksOnLookup(t *testing.T) {
	b := newFakeBackend()
	r := NewResolver(b)
	defer r.Close()
	waitFor(t, r, func(s Snapshot) bool { return !s.Loading })

	gate := make(chan struct{})
	b.mu.Lock()
	b.lookupGate = gate
	b.roleByToken["tok-5"] = model.RoleAdmin
	b.mu.Unlock()

	// emit runs the subscription callback synchronously; it must return
	// even though the role lookup is blocked.
	done := make(chan struct{})
	go func() {
		b.emit(staffSession("tok-5"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscription callback blocked on role lookup")
	}

	// Until the lookup lands the session holds the lowest privilege.
	s := r.Snapshot()
	require.True(t, s.SignedIn())
	require.Equal(t, model.RoleUser, s.Role)

	close(gate)
	waitFor(t, r, func(s Snapshot) bool { return s.IsAdmin() })
}

func TestResolverDropsStaleLookup(t *testing.T) {
	b := newFakeBackend()
	r := NewResolver(b)
	defer r.Close()
	waitFor(t, r, func(s Snapshot) bool { return !s.Loading })

	gate := make(chan struct{})
	b.mu.Lock()
	b.lookupGate = gate
	b.roleByToken["tok-6"] = model.RoleAdmin
	b.mu.Unlock()

	b.emit(staffSession("tok-6"))
	waitFor(t, r, func(s Snapshot) bool { return s.SignedIn() })

	// The user signs out while the admin lookup is still in flight. Its
	// late result must not resurrect staff access.
	b.emit(nil, nil)
	close(gate)

	time.Sleep(50 * time.Millisecond)
	s := r.Snapshot()
	require.False(t, s.SignedIn())
	require.Equal(t, model.RoleUser, s.Role)
	require.False(t, s.HasStaffAccess())
}

func TestResolverLoadingFlipsExactlyOnce(t *testing.T) {
	b := newFakeBackend()
	r := NewResolver(b)
	defer r.Close()

	var mu sync.Mutex
	var loadingSeen []bool
	remove := r.Watch(func(s Snapshot) {
		mu.Lock()
		loadingSeen = append(loadingSeen, s.Loading)
		mu.Unlock()
	})
	defer remove()

	waitFor(t, r, func(s Snapshot) bool { return !s.Loading })

	b.roleByToken["tok-7"] = model.RoleAdmin
	b.emit(staffSession("tok-7"))
	waitFor(t, r, func(s Snapshot) bool { return s.IsAdmin() })
	b.emit(nil, nil)
	waitFor(t, r, func(s Snapshot) bool { return !s.SignedIn() })

	mu.Lock()
	defer mu.Unlock()
	flipped := false
	for _, loading := range loadingSeen {
		if flipped {
			require.False(t, loading, "loading went true again after resolution")
		}
		if !loading {
			flipped = true
		}
	}
	require.True(t, flipped)
}

func TestResolverApplyIsIdempotent(t *testing.T) {
	b := newFakeBackend()
	sess, user := staffSession("tok-8")
	b.currentSess, b.currentUser = sess, user
	b.roleByToken["tok-8"] = model.RoleAdmin

	r := NewResolver(b)
	defer r.Close()
	waitFor(t, r, func(s Snapshot) bool { return !s.Loading && s.IsAdmin() })

	// The subscription delivering the same session the initial check
	// already applied must not trigger another lookup.
	b.mu.Lock()
	before := b.lookups
	b.mu.Unlock()

	b.emit(sess, user)
	time.Sleep(50 * time.Millisecond)

	b.mu.Lock()
	after := b.lookups
	b.mu.Unlock()
	require.Equal(t, before, after)
	require.True(t, r.Snapshot().IsAdmin())
}

func TestResolverSignOutClearsStateSynchronously(t *testing.T) {
	b := newFakeBackend()
	sess, user := staffSession("tok-9")
	b.currentSess, b.currentUser = sess, user
	b.roleByToken["tok-9"] = model.RoleAdmin

	r := NewResolver(b)
	defer r.Close()
	waitFor(t, r, func(s Snapshot) bool { return s.IsAdmin() })

	require.NoError(t, r.SignOut(context.Background()))

	// No waiting: the snapshot must already be cleared when SignOut returns.
	s := r.Snapshot()
	require.False(t, s.SignedIn())
	require.Equal(t, model.RoleUser, s.Role)
	require.False(t, s.HasStaffAccess())

	b.mu.Lock()
	defer b.mu.Unlock()
	require.Equal(t, 1, b.signOuts)
}

func TestResolverSlowInitialCheckDoesNotClobberSignIn(t *testing.T) {
	b := newFakeBackend()
	gate := make(chan struct{})
	b.currentGate = gate
	b.roleByToken["tok-11"] = model.RoleAdmin

	r := NewResolver(b)
	defer r.Close()

	// A sign-in lands through the subscription while the startup session
	// check is still in flight and will eventually report "no session".
	b.emit(staffSession("tok-11"))
	waitFor(t, r, func(s Snapshot) bool { return s.IsAdmin() })

	// The check completes late; its stale result must be discarded.
	close(gate)
	time.Sleep(50 * time.Millisecond)
	s := r.Snapshot()
	require.True(t, s.SignedIn())
	require.True(t, s.IsAdmin())
	require.True(t, s.HasStaffAccess())
}

func TestResolverCloseUnsubscribesAndFreezes(t *testing.T) {
	b := newFakeBackend()
	r := NewResolver(b)
	waitFor(t, r, func(s Snapshot) bool { return !s.Loading })

	r.Close()
	r.Close() // second close is a no-op

	b.mu.Lock()
	unsubs := b.unsubs
	b.mu.Unlock()
	require.Equal(t, 1, unsubs)

	b.roleByToken["tok-10"] = model.RoleAdmin
	b.emit(staffSession("tok-10"))
	time.Sleep(50 * time.Millisecond)
	require.False(t, r.Snapshot().SignedIn())
}
