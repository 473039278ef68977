// Package statestore keeps the small pieces of client state that must
// survive restarts: the authenticated session and the device-lock
// verifier. Vault records never land here; they always come from the
// server and are decrypted in memory only.
package statestore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"credvault/internal/app/client/devicelock"
	"credvault/internal/app/client/flow"
)

// ErrNoSession is returned when no session has been saved.
var ErrNoSession = errors.New("no saved session")

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	store := &Store{db: db}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state tables: %w", err)
	}

	return store, nil
}

func (s *Store) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			token TEXT NOT NULL,
			user_id TEXT NOT NULL,
			email TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS device_lock (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			salt BLOB NOT NULL,
			hash BLOB NOT NULL
		);
	`)

	return err
}

// SaveSession stores the session, replacing any previous one.
func (s *Store) SaveSession(session flow.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, user_id, email) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token,
		                              user_id = excluded.user_id,
		                              email = excluded.email
	`, session.Token, session.UserID, session.Email)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *Store) LoadSession() (flow.Session, error) {
	var session flow.Session

	err := s.db.QueryRow(`SELECT token, user_id, email FROM session WHERE id = 1`).
		Scan(&session.Token, &session.UserID, &session.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return flow.Session{}, ErrNoSession
	}
	if err != nil {
		return flow.Session{}, fmt.Errorf("load session: %w", err)
	}

	return session, nil
}

// ClearSession forgets the saved session. Clearing an empty store is not
// an error.
func (s *Store) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

// SaveVerifier stores the enrolled device-lock verifier, replacing any
// previous one.
func (s *Store) SaveVerifier(v devicelock.Verifier) error {
	_, err := s.db.Exec(`
		INSERT INTO device_lock (id, salt, hash) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET salt = excluded.salt, hash = excluded.hash
	`, v.Salt, v.Hash)
	if err != nil {
		return fmt.Errorf("save verifier: %w", err)
	}

	return nil
}

func (s *Store) LoadVerifier() (devicelock.Verifier, error) {
	var v devicelock.Verifier

	err := s.db.QueryRow(`SELECT salt, hash FROM device_lock WHERE id = 1`).
		Scan(&v.Salt, &v.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return devicelock.Verifier{}, devicelock.ErrNotEnrolled
	}
	if err != nil {
		return devicelock.Verifier{}, fmt.Errorf("load verifier: %w", err)
	}

	return v, nil
}

// Enrolled reports whether a device-lock verifier has been stored.
func (s *Store) Enrolled() (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM device_lock`).Scan(&count); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}

	return count > 0, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
