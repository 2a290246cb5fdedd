package store

import (
	"fmt"

	"ideaboard/internal/model"
)

// ExportAll builds export rows for every solution across every workshop,
// grouped by workshop in creation order, each row carrying the owning
// workshop's name.
func (s *Store) ExportAll() ([]model.ExportRow, error) {
	workshops, err := s.ListWorkshops()
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}

	var rows []model.ExportRow
	for _, ws := range workshops {
		solutions, err := s.ListSolutions(ws.ID)
		if err != nil {
			return nil, fmt.Errorf("list solutions for %s: %w", ws.ID, err)
		}
		for _, sol := range solutions {
			rows = append(rows, model.ExportRow{
				WorkshopName: ws.Name,
				Solution:     sol,
			})
		}
	}
	return rows, nil
}
