// Package session owns the client's authentication state: the bearer
// token, the signed-in user, and their persisted copies. All state
// transitions write through to the credential store before updating
// memory, so a crash never leaves disk ahead of or behind the UI.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/model"
	"github.com/smashmate/smashmate/pkg/store"
)

// Manager tracks the current session. The zero state is signed out;
// call Initialize once at startup to restore a persisted session.
//
// Callback fields must be set before Initialize and not changed after.
type Manager struct {
	api   *api.Client
	creds store.CredentialStore

	mu      sync.RWMutex
	user    *model.User
	token   string
	loading bool

	// OnChange fires after every state transition with the new user,
	// or nil when signed out. Called without the manager lock held.
	OnChange func(*model.User)
}

// NewManager wires a manager to the API client and credential store.
// The manager starts in the loading state until Initialize completes.
func NewManager(client *api.Client, creds store.CredentialStore) *Manager {
	return &Manager{api: client, creds: creds, loading: true}
}

// User returns a copy of the signed-in user, or nil.
func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// Token returns the current bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Authenticated reports whether a user is signed in.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.user != nil
}

// Loading reports whether Initialize is still running. The UI shows a
// splash instead of the login screen while this is true.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Initialize restores the persisted session, if any, and verifies the
// stored token against the server. A definitive rejection (401) clears
// the session; a network failure keeps the restored session so the app
// stays usable offline. Initialize itself only fails on storage errors.
func (m *Manager) Initialize(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		m.notify()
	}()

	token, user, err := m.creds.Load()
	if err != nil {
		return err
	}
	if token == "" || user == nil {
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	m.api.SetToken(token)

	m.verifyToken(ctx)
	return nil
}

// verifyToken asks the server whether the restored token is still
// good. On success the server's copy of the user is adopted, since the
// profile may have changed on another device.
func (m *Manager) verifyToken(ctx context.Context) {
	user, err := m.api.Me(ctx)
	switch {
	case err == nil:
		m.mu.RLock()
		token := m.token
		m.mu.RUnlock()
		if err := m.adopt(token, user); err != nil {
			slog.Warn("could not re-persist verified session", "error", err)
		}
	case errors.Is(err, api.ErrUnauthorized):
		slog.Info("stored token rejected, signing out")
		m.Logout()
	default:
		// Can't reach the server; trust the stored session.
		slog.Warn("token verification skipped", "error", err)
	}
}

// Login exchanges credentials for a session. The returned error carries
// the server's message when the server rejected the attempt.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := m.adopt(token, user); err != nil {
		return err
	}
	m.notify()
	return nil
}

// Register creates an account and signs in with the returned session.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	if err := model.ValidateUsername(username); err != nil {
		return err
	}
	token, user, err := m.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	if err := m.adopt(token, user); err != nil {
		return err
	}
	m.notify()
	return nil
}

// UpdateProfile applies a partial profile update and adopts the
// server's view of the resulting user.
func (m *Manager) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return ErrNotAuthenticated
	}
	if update.IsEmpty() {
		return nil
	}
	user, err := m.api.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	if err := m.adopt(token, user); err != nil {
		return err
	}
	m.notify()
	return nil
}

// DeleteAccount removes the account server-side, then clears the local
// session. The local session survives if the server call fails.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return ErrNotAuthenticated
	}
	if err := m.api.DeleteAccount(ctx); err != nil {
		return err
	}
	m.Logout()
	return nil
}

// Logout clears the session unconditionally. It never fails: a storage
// error is logged and the in-memory session is cleared regardless, so
// the user is always able to sign out.
func (m *Manager) Logout() {
	if err := m.creds.Clear(); err != nil {
		slog.Warn("could not clear stored credentials", "error", err)
	}
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	m.api.SetToken("")
	m.notify()
}

// adopt persists the session, then updates memory and the API client.
// Persistence failing leaves the previous session fully intact.
func (m *Manager) adopt(token string, user *model.User) error {
	if err := m.creds.Save(token, user); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	m.api.SetToken(token)
	return nil
}

func (m *Manager) notify() {
	if m.OnChange == nil {
		return
	}
	m.OnChange(m.User())
}
