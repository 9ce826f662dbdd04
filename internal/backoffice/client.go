// Package backoffice is the API client used by the staff CLI. It speaks the
// /v1/auth surface of the concierge API and implements session.AuthBackend,
// so the session resolver can run against it directly.
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rivieraprestige/concierge-api/internal/session"
)

// Sentinel errors surfaced to the CLI so it can choose a message without
// parsing response bodies.
var (
	ErrUnauthorized = errors.New("backoffice: unauthorized")
	ErrConflict     = errors.New("backoffice: already exists")
)

// Doer is the subset of *http.Client the client needs. Tests substitute a fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a stateful API client: it holds the tokens of at most one
// signed-in staff member and notifies subscribers when that changes.
type Client struct {
	baseURL string
	http    Doer

	mu      sync.Mutex
	sess    *session.Session
	user    *session.User
	subs    map[uint64]func(*session.Session, *session.User)
	nextSub uint64
}

var _ session.AuthBackend = (*Client)(nil)

// New returns a client for the API at baseURL, for example
// "https://api.rivieraprestige.example". A nil doer uses a default
// http.Client with a 15 second timeout.
func New(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    doer,
		subs:    map[uint64]func(*session.Session, *session.User){},
	}
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type authResponse struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Subscribe implements session.AuthBackend.
func (c *Client) Subscribe(fn func(sess *session.Session, user *session.User)) func() {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// CurrentSession implements session.AuthBackend. The client keeps no
// persistent token store, so this is simply whatever sign-in already
// happened on this client instance.
func (c *Client) CurrentSession(_ context.Context) (*session.Session, *session.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess, c.user, nil
}

// LookupRole implements session.AuthBackend by calling /v1/auth/me, which
// resolves the role from the role_assignments table on every call.
func (c *Client) LookupRole(ctx context.Context, sess *session.Session) (string, error) {
	if sess == nil {
		return "", errors.New("backoffice: no session")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/auth/me", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backoffice: me returned %d", resp.StatusCode)
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Role, nil
}

// SignUp implements session.AuthBackend. Registration signs the new account
// in, so subscribers see the fresh session immediately.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) error {
	var out authResponse
	err := c.postJSON(ctx, "/v1/auth/register", map[string]string{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	}, &out)
	if err != nil {
		return err
	}
	c.install(&out)
	return nil
}

// SignIn implements session.AuthBackend.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	var out authResponse
	err := c.postJSON(ctx, "/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	c.install(&out)
	return nil
}

// SignOut implements session.AuthBackend. Local state clears even when the
// server call fails; the tokens are gone from this process either way.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.user = nil
	fns := c.subListLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(nil, nil)
	}
	if sess == nil {
		return nil
	}

	payload, _ := json.Marshal(map[string]string{"refresh_token": sess.RefreshToken})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/logout", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backoffice: logout returned %d", resp.StatusCode)
	}
	return nil
}

// RefreshAccess exchanges the stored refresh token for a new access token
// and notifies subscribers of the session change.
func (c *Client) RefreshAccess(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()
	if sess == nil {
		return ErrUnauthorized
	}

	var out struct {
		Access tokenPart `json:"access"`
	}
	err := c.postJSON(ctx, "/v1/auth/refresh-access", map[string]string{
		"refresh_token": sess.RefreshToken,
	}, &out)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.sess == nil || c.sess.RefreshToken != sess.RefreshToken {
		// Signed out or replaced while the refresh was in flight.
		c.mu.Unlock()
		return nil
	}
	c.sess = &session.Session{AccessToken: out.Access.Token, RefreshToken: sess.RefreshToken}
	newSess, user := c.sess, c.user
	fns := c.subListLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(newSess, user)
	}
	return nil
}

// install stores the tokens from a register or login response and notifies
// subscribers.
func (c *Client) install(out *authResponse) {
	sess := &session.Session{AccessToken: out.Access.Token, RefreshToken: out.Refresh.Token}
	user := &session.User{ID: out.User.ID, Email: out.User.Email, DisplayName: out.User.DisplayName}

	c.mu.Lock()
	c.sess = sess
	c.user = user
	fns := c.subListLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(sess, user)
	}
}

func (c *Client) subListLocked() []func(*session.Session, *session.User) {
	fns := make([]func(*session.Session, *session.User), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return fns
}

// postJSON posts a JSON body and decodes a JSON response, translating the
// common error statuses into sentinel errors.
func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	case resp.StatusCode >= 400:
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "" {
			return fmt.Errorf("backoffice: %s", body.Error)
		}
		return fmt.Errorf("backoffice: %s returned %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// drain consumes and closes a response body so the connection is reusable.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	resp.Body.Close()
}
