package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"
)

// CreateAdminSession creates a new admin session token. The admin gate is a
// shared static passphrase with no expiry, so sessions live until logout or
// process exit.
func (s *Store) CreateAdminSession() (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(
		`INSERT INTO admin_sessions (id, created_at) VALUES (?, ?)`,
		token, time.Now(),
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidAdminSession reports whether the token belongs to a live admin session.
func (s *Store) ValidAdminSession(token string) (bool, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM admin_sessions WHERE id = ?`, token).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAdminSession removes a session token.
func (s *Store) DeleteAdminSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM admin_sessions WHERE id = ?`, token)
	return err
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
