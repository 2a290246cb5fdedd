package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ideaboard/internal/model"
)

// InsertSolution appends a validated draft's contents as a new solution in
// the given workshop. The chosen challenge must be in the workshop's active
// set at insertion time. Returns the stored solution with its fresh ID and
// timestamp.
func (s *Store) InsertSolution(workshopID string, d model.Draft) (model.Solution, error) {
	ws, err := s.GetWorkshop(workshopID)
	if err != nil {
		return model.Solution{}, err
	}
	if ws == nil {
		return model.Solution{}, ErrWorkshopNotFound
	}
	active, err := s.IsChallengeActive(workshopID, d.Challenge)
	if err != nil {
		return model.Solution{}, err
	}
	if !active {
		return model.Solution{}, ErrChallengeInactive
	}

	sol := model.Solution{
		ID:          uuid.NewString(),
		WorkshopID:  workshopID,
		Challenge:   d.Challenge,
		GroupName:   d.GroupName,
		StudentName: d.StudentName,
		What:        d.What,
		Why:         d.Why,
		How:         d.How,
		CreatedAt:   time.Now(),
	}
	_, err = s.db.Exec(
		`INSERT INTO solutions (id, workshop_id, challenge, group_name, student_name, what, why, how, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sol.ID, sol.WorkshopID, sol.Challenge, sol.GroupName, sol.StudentName,
		sol.What, sol.Why, sol.How, sol.CreatedAt,
	)
	if err != nil {
		return model.Solution{}, err
	}
	slog.Info("stored solution", "id", sol.ID, "workshop", workshopID, "challenge", sol.Challenge, "group", sol.GroupName)
	return sol, nil
}

// ListSolutions returns a workshop's solutions in insertion order.
func (s *Store) ListSolutions(workshopID string) ([]model.Solution, error) {
	rows, err := s.db.Query(
		`SELECT id, workshop_id, challenge, group_name, student_name, what, why, how, created_at
		 FROM solutions WHERE workshop_id = ? ORDER BY rowid`, workshopID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var solutions []model.Solution
	for rows.Next() {
		var sol model.Solution
		if err := rows.Scan(&sol.ID, &sol.WorkshopID, &sol.Challenge, &sol.GroupName,
			&sol.StudentName, &sol.What, &sol.Why, &sol.How, &sol.CreatedAt); err != nil {
			return nil, err
		}
		solutions = append(solutions, sol)
	}
	return solutions, rows.Err()
}

// SolutionCount returns the number of solutions in a workshop.
func (s *Store) SolutionCount(workshopID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM solutions WHERE workshop_id = ?`, workshopID,
	).Scan(&count)
	return count, err
}

// UniqueChallenges returns the distinct challenge names that appear in a
// workshop's solutions, in order of first appearance.
func (s *Store) UniqueChallenges(workshopID string) ([]string, error) {
	return s.challengeNames(
		`SELECT challenge FROM solutions WHERE workshop_id = ? GROUP BY challenge ORDER BY MIN(rowid)`,
		workshopID,
	)
}

// UniqueGroups returns the distinct group names that appear in a workshop's
// solutions, in order of first appearance.
func (s *Store) UniqueGroups(workshopID string) ([]string, error) {
	return s.challengeNames(
		`SELECT group_name FROM solutions WHERE workshop_id = ? GROUP BY group_name ORDER BY MIN(rowid)`,
		workshopID,
	)
}
