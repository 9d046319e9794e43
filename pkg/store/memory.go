package store

import (
	"fmt"
	"sync"

	"github.com/smashmate/smashmate/pkg/model"
)

// MemoryStore provides an in-memory CredentialStore implementation for
// tests. It mirrors the SQLite store's validation and absent-state behavior.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *model.User

	// Saves counts successful Save calls, for asserting write-through.
	saves int
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// Save stores both entries together.
func (m *MemoryStore) Save(token string, user *model.User) error {
	if token == "" || user == nil {
		return fmt.Errorf("store: save: token and user must both be present")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user.Clone()
	m.saves++
	return nil
}

// Load returns the stored credentials, or ("", nil, nil) when absent.
func (m *MemoryStore) Load() (string, *model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" || m.user == nil {
		return "", nil, nil
	}
	return m.token, m.user.Clone(), nil
}

// Clear removes both entries.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Saves returns the number of successful Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
