// ABOUTME: Session manager owning the credential lifecycle
// ABOUTME: Sole writer of the stored token; reacts to credential rejection

package session

import (
	"context"
	"sync"

	"github.com/enochcodes/orchestra/cli/internal/client"
)

// State is the session lifecycle state.
type State int

const (
	StateRestoring State = iota
	StateAuthenticated
	StateUnauthenticated
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Manager is the single source of truth for "is there a usable
// credential". It wraps the API client, feeds it the bearer token, and
// is the only component that writes the credential.
type Manager struct {
	store  *Store
	client *client.Client

	mu        sync.RWMutex
	state     State
	token     string
	principal *client.User
}

// New creates a manager around a store and an API base URL. The
// returned manager is wired into the client as its credential source
// and unauthorized handler.
func New(store *Store, baseURL string) *Manager {
	m := &Manager{
		store: store,
		state: StateRestoring,
	}
	c := client.New(baseURL)
	c.SetCredentialSource(m)
	c.SetUnauthorizedHandler(m.invalidate)
	m.client = c
	return m
}

// Client returns the session-wrapped API client. All protected screens
// issue requests through it.
func (m *Manager) Client() *client.Client {
	return m.client
}

// Token implements client.CredentialSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Authenticated reports whether a usable credential is held.
func (m *Manager) Authenticated() bool {
	return m.State() == StateAuthenticated
}

// Principal returns the cached principal, which may be nil.
func (m *Manager) Principal() *client.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.principal
}

// Restore loads any stored credential and verifies it against the
// backend. With no stored credential it completes immediately, keeping
// an optimistically cached principal from a prior session for display
// until a request proves it invalid.
func (m *Manager) Restore(ctx context.Context) error {
	token, cached, err := m.store.Load()
	if err != nil {
		m.setUnauthenticated(nil)
		return err
	}

	if token == "" {
		m.setUnauthenticated(cached)
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	user, err := m.client.Me(ctx)
	if err != nil {
		// Rejection or network failure: the credential is not usable.
		m.invalidate()
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.principal = user
	m.mu.Unlock()
	return m.store.Save(token, user)
}

// Login exchanges credentials for a token. On success the token and
// principal are persisted and the state becomes authenticated. On
// failure the store is left untouched and the error is returned for
// display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	user := resp.User
	m.mu.Lock()
	m.token = resp.Token
	m.principal = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	return m.store.Save(resp.Token, &user)
}

// Logout clears the stored credential and principal unconditionally.
// A store failure does not keep the session alive.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.principal = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	_ = m.store.Clear()
}

// RefreshPrincipal re-fetches the identity endpoint to pick up profile
// changes without altering the credential.
func (m *Manager) RefreshPrincipal(ctx context.Context) error {
	user, err := m.client.Me(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.principal = user
	token := m.token
	m.mu.Unlock()

	return m.store.Save(token, user)
}

// invalidate is the 401 side effect: clear the credential and principal
// exactly once, even when multiple rejected requests land concurrently.
func (m *Manager) invalidate() {
	m.mu.Lock()
	if m.token == "" && m.state == StateUnauthenticated {
		m.mu.Unlock()
		return
	}
	m.token = ""
	m.principal = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	_ = m.store.Clear()
}

// setUnauthenticated completes restore without a credential, surfacing
// an optimistically cached principal when one exists.
func (m *Manager) setUnauthenticated(cached *client.User) {
	m.mu.Lock()
	m.token = ""
	m.principal = cached
	m.state = StateUnauthenticated
	m.mu.Unlock()
}
