package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/dexview/internal/models"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			client_id TEXT PRIMARY KEY,
			dark INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Preferences ---

// GetPreferences returns the stored preferences of a client, or nil if none are stored
func (s *Store) GetPreferences(clientID string) (*models.Preferences, error) {
	var p models.Preferences
	err := s.db.QueryRow(`
		SELECT client_id, dark, updated_at FROM preferences WHERE client_id = ?
	`, clientID).Scan(&p.ClientID, &p.Dark, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PreferencesOrDefault returns stored preferences, or the light-mode default
func (s *Store) PreferencesOrDefault(clientID string) (*models.Preferences, error) {
	p, err := s.GetPreferences(clientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &models.Preferences{ClientID: clientID}, nil
	}
	return p, nil
}

// SetDark stores the theme flag for a client
func (s *Store) SetDark(clientID string, dark bool) (*models.Preferences, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO preferences (client_id, dark, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET dark = excluded.dark, updated_at = excluded.updated_at
	`, clientID, dark, now)
	if err != nil {
		return nil, err
	}
	return &models.Preferences{ClientID: clientID, Dark: dark, UpdatedAt: now}, nil
}

// ToggleTheme flips the theme flag of a client in a transaction
func (s *Store) ToggleTheme(clientID string) (*models.Preferences, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var dark bool
	err = tx.QueryRow(`SELECT dark FROM preferences WHERE client_id = ?`, clientID).Scan(&dark)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(`
		INSERT INTO preferences (client_id, dark, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET dark = excluded.dark, updated_at = excluded.updated_at
	`, clientID, !dark, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &models.Preferences{ClientID: clientID, Dark: !dark, UpdatedAt: now}, nil
}
