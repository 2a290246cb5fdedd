package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Sentinel errors for the user-visible failure taxonomy. Handlers match these
// with errors.Is and map them to localized inline messages.
var (
	ErrWorkshopNotFound  = errors.New("workshop not found")
	ErrWorkshopNameEmpty = errors.New("workshop name must not be empty")
	ErrChallengeExists   = errors.New("challenge already exists")
	ErrChallengeEmpty    = errors.New("challenge name must not be empty")
	ErrChallengeUnknown  = errors.New("challenge not in catalog or custom list")
	ErrChallengeInactive = errors.New("challenge is not active")
)

// Store owns the workshop registry: workshops, their solutions, challenge
// activation state, the current-workshop pointer, and admin sessions.
type Store struct {
	db      *sql.DB
	catalog []string
}

// New opens the backing database and runs migrations. All application state
// is meant to live in process memory only, so callers pass ":memory:"; a
// restart loses everything, which is the documented behavior, not a bug.
func New(dsn string, defaultCatalog []string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database exists per connection; keep the pool at one so
	// every query sees the same data.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db, catalog: defaultCatalog}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workshops (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		workshop_id TEXT NOT NULL,
		challenge TEXT NOT NULL,
		group_name TEXT NOT NULL,
		student_name TEXT NOT NULL,
		what TEXT NOT NULL,
		why TEXT NOT NULL,
		how TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (workshop_id) REFERENCES workshops(id)
	);

	CREATE TABLE IF NOT EXISTS custom_challenges (
		workshop_id TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (workshop_id, name),
		FOREIGN KEY (workshop_id) REFERENCES workshops(id)
	);

	CREATE TABLE IF NOT EXISTS active_challenges (
		workshop_id TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (workshop_id, name),
		FOREIGN KEY (workshop_id) REFERENCES workshops(id)
	);

	CREATE TABLE IF NOT EXISTS app_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS admin_sessions (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Catalog returns the fixed default challenge catalog the store was opened
// with, in its original order.
func (s *Store) Catalog() []string {
	out := make([]string, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *Store) inCatalog(name string) bool {
	for _, c := range s.catalog {
		if c == name {
			return true
		}
	}
	return false
}
