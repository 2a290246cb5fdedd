package store

import (
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ideaboard/internal/model"
)

const currentWorkshopKey = "current_workshop"

// CreateWorkshop allocates a new workshop with an empty working set and makes
// it the current workshop.
func (s *Store) CreateWorkshop(name string) (model.Workshop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Workshop{}, ErrWorkshopNameEmpty
	}

	ws := model.Workshop{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Workshop{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO workshops (id, name, created_at) VALUES (?, ?, ?)`,
		ws.ID, ws.Name, ws.CreatedAt,
	); err != nil {
		return model.Workshop{}, err
	}
	if _, err := tx.Exec(
		`INSERT INTO app_metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		currentWorkshopKey, ws.ID, ws.ID,
	); err != nil {
		return model.Workshop{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Workshop{}, err
	}

	slog.Info("created workshop", "id", ws.ID, "name", ws.Name)
	return ws, nil
}

// GetWorkshop returns a workshop by ID, or nil if it does not exist.
func (s *Store) GetWorkshop(id string) (*model.Workshop, error) {
	var ws model.Workshop
	err := s.db.QueryRow(
		`SELECT id, name, created_at FROM workshops WHERE id = ?`, id,
	).Scan(&ws.ID, &ws.Name, &ws.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListWorkshops returns all workshops in creation order.
func (s *Store) ListWorkshops() ([]model.Workshop, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM workshops ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var workshops []model.Workshop
	for rows.Next() {
		var ws model.Workshop
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.CreatedAt); err != nil {
			return nil, err
		}
		workshops = append(workshops, ws)
	}
	return workshops, rows.Err()
}

// SwitchWorkshop makes the workshop with the given ID current. The working
// set (solutions, active challenges, custom challenges) read afterwards is
// that workshop's stored state.
func (s *Store) SwitchWorkshop(id string) error {
	ws, err := s.GetWorkshop(id)
	if err != nil {
		return err
	}
	if ws == nil {
		return ErrWorkshopNotFound
	}
	_, err = s.db.Exec(
		`INSERT INTO app_metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		currentWorkshopKey, id, id,
	)
	return err
}

// DeleteWorkshop removes a workshop together with all of its solutions and
// challenge state. If it was the current workshop, the current-selection
// pointer is cleared; "no current workshop" is a valid state afterwards.
// Callers are expected to have confirmed the action with the user first.
func (s *Store) DeleteWorkshop(id string) error {
	ws, err := s.GetWorkshop(id)
	if err != nil {
		return err
	}
	if ws == nil {
		return ErrWorkshopNotFound
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM solutions WHERE workshop_id = ?`,
		`DELETE FROM custom_challenges WHERE workshop_id = ?`,
		`DELETE FROM active_challenges WHERE workshop_id = ?`,
		`DELETE FROM workshops WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(
		`DELETE FROM app_metadata WHERE key = ? AND value = ?`,
		currentWorkshopKey, id,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("deleted workshop", "id", id, "name", ws.Name)
	return nil
}

// CurrentWorkshop returns the current workshop, or nil if none is selected.
func (s *Store) CurrentWorkshop() (*model.Workshop, error) {
	var id string
	err := s.db.QueryRow(
		`SELECT value FROM app_metadata WHERE key = ?`, currentWorkshopKey,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.GetWorkshop(id)
}

// GetWorkshopView builds a full view of a workshop with its solutions and
// challenge state.
func (s *Store) GetWorkshopView(id string) (*model.WorkshopView, error) {
	ws, err := s.GetWorkshop(id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkshopNotFound
	}
	solutions, err := s.ListSolutions(id)
	if err != nil {
		return nil, err
	}
	active, err := s.ActiveChallenges(id)
	if err != nil {
		return nil, err
	}
	custom, err := s.CustomChallenges(id)
	if err != nil {
		return nil, err
	}
	return &model.WorkshopView{
		Workshop:         *ws,
		Solutions:        solutions,
		ActiveChallenges: active,
		CustomChallenges: custom,
	}, nil
}
