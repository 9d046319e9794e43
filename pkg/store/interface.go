package store

import "github.com/smashmate/smashmate/pkg/model"

// CredentialStore persists the bearer token and the current-user record.
// The two entries are always written together and cleared together; on the
// success path persisted state never lags the in-memory session.
// Implementations include the default SQLite store and an in-memory store
// for tests.
type CredentialStore interface {
	// Save writes both entries in one transaction.
	Save(token string, user *model.User) error

	// Load returns the stored credentials, or ("", nil, nil) when absent.
	// A partial record (one entry without the other) is treated as absent.
	Load() (string, *model.User, error)

	// Clear removes both entries. Clearing an empty store is a no-op.
	Clear() error

	// Close releases the underlying storage.
	Close() error
}

// Compile-time checks.
var _ CredentialStore = (*Store)(nil)
var _ CredentialStore = (*MemoryStore)(nil)
