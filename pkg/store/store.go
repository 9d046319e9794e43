// Package store provides SQLite-backed persistence for the client's
// authentication credentials.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/smashmate/smashmate/pkg/crypto"
	"github.com/smashmate/smashmate/pkg/model"
)

// Storage keys. The token is sealed at rest; the user record is plain JSON.
const (
	keyAuthToken = "authToken"
	keyUser      = "user"
)

// Store persists credentials in a small key/value table.
type Store struct {
	db     *sql.DB
	sealer *crypto.Sealer
}

// New opens (or creates) the credentials database and runs migrations.
// The key is used to seal the bearer token at rest.
func New(dbPath string, key []byte) (*Store, error) {
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: set WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: set busy_timeout: %w", err)
	}

	s := &Store{db: db, sealer: sealer}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	ctx := context.Background()
	if err := s.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	currentVersion, err := s.getSchemaVersion(ctx)
	if err != nil {
		return err
	}

	migrations := []struct {
		version    int
		statements []string
	}{
		{
			version: 1,
			statements: []string{`
			CREATE TABLE IF NOT EXISTS credentials (
				key        TEXT PRIMARY KEY,
				value      BLOB NOT NULL,
				updated_at TEXT NOT NULL DEFAULT (datetime('now'))
			)`},
		},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("store: migrate: %w", err)
			}
		}
		if err := s.setSchemaVersion(ctx, m.version); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ensureSchemaMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("store: create schema_migrations: %w", err)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		return fmt.Errorf("store: check schema_migrations: %w", err)
	}
	if count == 0 {
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (0)"); err != nil {
			return fmt.Errorf("store: init schema_migrations: %w", err)
		}
	}
	return nil
}

func (s *Store) getSchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_migrations LIMIT 1").Scan(&version); err != nil {
		return 0, fmt.Errorf("store: read schema version: %w", err)
	}
	return version, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, version int) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE schema_migrations SET version = ?", version); err != nil {
		return fmt.Errorf("store: update schema version: %w", err)
	}
	return nil
}

// Save writes the token and user record in one transaction, so the store
// never holds a token without its user or vice versa.
func (s *Store) Save(token string, user *model.User) error {
	if token == "" || user == nil {
		return fmt.Errorf("store: save: token and user must both be present")
	}

	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("store: save: encode user: %w", err)
	}

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, keyAuthToken, sealed); err != nil {
		return fmt.Errorf("store: save token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyUser, userJSON); err != nil {
		return fmt.Errorf("store: save user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// Load returns the stored credentials, or ("", nil, nil) when absent.
func (s *Store) Load() (string, *model.User, error) {
	sealed, okToken, err := s.get(keyAuthToken)
	if err != nil {
		return "", nil, err
	}
	userJSON, okUser, err := s.get(keyUser)
	if err != nil {
		return "", nil, err
	}
	if !okToken || !okUser {
		// One entry without the other should not happen; treat as absent.
		return "", nil, nil
	}

	raw, err := s.sealer.Open(sealed)
	if err != nil {
		return "", nil, fmt.Errorf("store: load token: %w", err)
	}
	var user model.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return "", nil, fmt.Errorf("store: load user: %w", err)
	}
	return string(raw), &user, nil
}

func (s *Store) get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(context.Background(),
		"SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: get %s: %w", key, err)
	}
	return value, true, nil
}

// Clear removes both entries.
func (s *Store) Clear() error {
	_, err := s.db.ExecContext(context.Background(),
		"DELETE FROM credentials WHERE key IN (?, ?)", keyAuthToken, keyUser)
	if err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}
	return nil
}
