package store

import "strings"

// AllChallenges returns the default catalog concatenated with the workshop's
// custom challenges, in that order.
func (s *Store) AllChallenges(workshopID string) ([]string, error) {
	custom, err := s.CustomChallenges(workshopID)
	if err != nil {
		return nil, err
	}
	return append(s.Catalog(), custom...), nil
}

// CustomChallenges returns the workshop's administrator-added challenges in
// insertion order.
func (s *Store) CustomChallenges(workshopID string) ([]string, error) {
	return s.challengeNames(`SELECT name FROM custom_challenges WHERE workshop_id = ? ORDER BY rowid`, workshopID)
}

// ActiveChallenges returns the challenges currently visible to students in
// activation order.
func (s *Store) ActiveChallenges(workshopID string) ([]string, error) {
	return s.challengeNames(`SELECT name FROM active_challenges WHERE workshop_id = ? ORDER BY rowid`, workshopID)
}

func (s *Store) challengeNames(query, workshopID string) ([]string, error) {
	rows, err := s.db.Query(query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// IsChallengeActive reports whether name is in the workshop's active set.
func (s *Store) IsChallengeActive(workshopID, name string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM active_challenges WHERE workshop_id = ? AND name = ?`,
		workshopID, name,
	).Scan(&n)
	return n > 0, err
}

// AddCustomChallenge appends a new custom challenge to the workshop. The text
// is trimmed first; an empty result or a case-sensitive match against the
// default catalog or the workshop's existing custom challenges is rejected.
func (s *Store) AddCustomChallenge(workshopID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrChallengeEmpty
	}
	all, err := s.AllChallenges(workshopID)
	if err != nil {
		return err
	}
	for _, c := range all {
		if c == text {
			return ErrChallengeExists
		}
	}
	_, err = s.db.Exec(
		`INSERT INTO custom_challenges (workshop_id, name) VALUES (?, ?)`,
		workshopID, text,
	)
	return err
}

// DeleteCustomChallenge removes a custom challenge and cascades the removal
// to the active set. Deleting a name that is not a custom challenge is a
// no-op; default catalog entries can never be deleted.
func (s *Store) DeleteCustomChallenge(workshopID, name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`DELETE FROM custom_challenges WHERE workshop_id = ? AND name = ?`,
		workshopID, name,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return err
	}
	if _, err := tx.Exec(
		`DELETE FROM active_challenges WHERE workshop_id = ? AND name = ?`,
		workshopID, name,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// ToggleChallengeActive flips a challenge's membership in the workshop's
// active set. The name must come from the default catalog or the workshop's
// custom challenges; anything else violates the activation invariant.
func (s *Store) ToggleChallengeActive(workshopID, name string) error {
	if !s.inCatalog(name) {
		custom, err := s.CustomChallenges(workshopID)
		if err != nil {
			return err
		}
		known := false
		for _, c := range custom {
			if c == name {
				known = true
				break
			}
		}
		if !known {
			return ErrChallengeUnknown
		}
	}

	active, err := s.IsChallengeActive(workshopID, name)
	if err != nil {
		return err
	}
	if active {
		_, err = s.db.Exec(
			`DELETE FROM active_challenges WHERE workshop_id = ? AND name = ?`,
			workshopID, name,
		)
	} else {
		_, err = s.db.Exec(
			`INSERT INTO active_challenges (workshop_id, name) VALUES (?, ?)`,
			workshopID, name,
		)
	}
	return err
}
