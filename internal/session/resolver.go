package session

import (
	"context"
	"sync"
	"time"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

// roleLookupTimeout bounds the deferred role fetch. A slow server answers
// like a failed one: the snapshot falls back to the lowest privilege.
const roleLookupTimeout = 10 * time.Second

// Resolver tracks the current session and keeps the role in sync with it.
//
// Session changes arrive from two producers: the backend subscription and a
// one-shot check of whatever session existed before the resolver started.
// Both feed the same apply step, which is idempotent so their inevitable
// overlap is harmless. Role lookups never run inside the subscription
// callback; they are deferred to their own goroutine so a backend that
// holds a lock across notifications cannot deadlock against us.
type Resolver struct {
	backend AuthBackend

	mu          sync.Mutex
	snap        Snapshot
	gen         uint64 // bumped per session change; stamps in-flight lookups
	closed      bool
	loadingDone bool
	unsubscribe func()
	watchers    map[uint64]func(Snapshot)
	nextWatcher uint64
}

// NewResolver starts resolving immediately: it subscribes to backend session
// changes and kicks off the initial current-session check. The returned
// resolver reports Loading until the first resolution (including its role
// lookup) completes.
func NewResolver(backend AuthBackend) *Resolver {
	r := &Resolver{
		backend:  backend,
		snap:     Snapshot{Role: model.RoleUser, Loading: true},
		watchers: map[uint64]func(Snapshot){},
	}
	r.unsubscribe = backend.Subscribe(func(sess *Session, user *User) {
		r.apply(sess, user)
	})
	go r.initialCheck()
	return r
}

func (r *Resolver) initialCheck() {
	r.mu.Lock()
	start := r.gen
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), roleLookupTimeout)
	defer cancel()

	sess, user, err := r.backend.CurrentSession(ctx)
	if err != nil {
		// Cannot tell whether a session exists; treat as signed out so
		// the UI unblocks instead of spinning forever.
		sess, user = nil, nil
	}
	// Stamped with the generation at the start of the check: a session
	// change that arrived through the subscription while the check was in
	// flight is fresher and must not be clobbered by this result.
	r.applyAt(&start, sess, user)
}

// apply is the entry point for session changes from the subscription.
// Applying the same session twice is a no-op, except that the very first
// apply always completes loading.
func (r *Resolver) apply(sess *Session, user *User) {
	r.applyAt(nil, sess, user)
}

// applyAt applies a session change, discarding it when expect is non-nil and
// the generation has moved past it. Both producers funnel through here.
func (r *Resolver) applyAt(expect *uint64, sess *Session, user *User) {
	r.mu.Lock()
	if r.closed || (expect != nil && r.gen != *expect) {
		r.mu.Unlock()
		return
	}
	if sameSession(r.snap.Session, sess) && r.loadingDone {
		r.mu.Unlock()
		return
	}

	r.gen++
	gen := r.gen
	r.snap.Session = sess
	r.snap.User = user

	if sess == nil {
		// Signed out resolves immediately; there is no role to fetch.
		r.snap.Role = model.RoleUser
		r.finishLoadingLocked()
		snap := r.snap
		fns := r.watcherListLocked()
		r.mu.Unlock()
		notify(fns, snap)
		return
	}

	// Until the lookup lands this session has the lowest privilege.
	r.snap.Role = model.RoleUser
	snap := r.snap
	fns := r.watcherListLocked()
	r.mu.Unlock()
	notify(fns, snap)

	go r.resolveRole(gen, sess)
}

// resolveRole fetches the role for a session and installs it only if that
// session is still current. A stale result (the user signed out or switched
// accounts while the lookup was in flight) is dropped.
func (r *Resolver) resolveRole(gen uint64, sess *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), roleLookupTimeout)
	defer cancel()

	role, err := r.backend.LookupRole(ctx, sess)
	if err != nil || !model.ValidRole(role) {
		role = model.RoleUser
	}

	r.mu.Lock()
	if r.closed || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.snap.Role = role
	r.finishLoadingLocked()
	snap := r.snap
	fns := r.watcherListLocked()
	r.mu.Unlock()
	notify(fns, snap)
}

// finishLoadingLocked flips Loading to false. It only ever flips one way;
// later session changes never resurrect the loading state.
func (r *Resolver) finishLoadingLocked() {
	r.loadingDone = true
	r.snap.Loading = false
}

// Snapshot returns the current resolved state.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Watch registers fn to run on every snapshot change, and invokes it once
// immediately with the current state. The returned function removes it.
func (r *Resolver) Watch(fn func(Snapshot)) (remove func()) {
	r.mu.Lock()
	r.nextWatcher++
	id := r.nextWatcher
	r.watchers[id] = fn
	snap := r.snap
	r.mu.Unlock()

	fn(snap)
	return func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
}

// SignUp registers a new account. The backend signs the account in on
// success and the resulting session change flows through the subscription.
func (r *Resolver) SignUp(ctx context.Context, email, password, displayName string) error {
	return r.backend.SignUp(ctx, email, password, displayName)
}

// SignIn authenticates. The session change flows through the subscription.
func (r *Resolver) SignIn(ctx context.Context, email, password string) error {
	return r.backend.SignIn(ctx, email, password)
}

// SignOut ends the session. The local snapshot is cleared synchronously
// before the backend call, so no window exists in which a stale staff role
// outlives its session.
func (r *Resolver) SignOut(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.gen++ // invalidates any in-flight role lookup
		r.snap.Session = nil
		r.snap.User = nil
		r.snap.Role = model.RoleUser
		r.finishLoadingLocked()
	}
	snap := r.snap
	fns := r.watcherListLocked()
	r.mu.Unlock()
	notify(fns, snap)

	return r.backend.SignOut(ctx)
}

// Close cancels the backend subscription and freezes the resolver. Lookups
// already in flight finish but their results are discarded.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	unsub := r.unsubscribe
	r.watchers = map[uint64]func(Snapshot){}
	r.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (r *Resolver) watcherListLocked() []func(Snapshot) {
	fns := make([]func(Snapshot), 0, len(r.watchers))
	for _, fn := range r.watchers {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(Snapshot), snap Snapshot) {
	for _, fn := range fns {
		fn(snap)
	}
}

func sameSession(a, b *Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.AccessToken == b.AccessToken
}
