// Package export serializes solutions into downloadable CSV text.
package export

import (
	"errors"
	"strings"
	"time"

	"ideaboard/internal/model"
)

// ErrNothingToExport is returned when the row set is empty; the caller must
// surface it and produce no file.
var ErrNothingToExport = errors.New("nothing to export")

// Translator resolves an i18n message ID to its localized text, used for the
// CSV header row.
type Translator func(msgID string) string

// AllWorkshopsLabel is the message ID for the filename label used when
// exporting every workshop.
const AllWorkshopsLabel = "CSVAllWorkshops"

var currentHeader = []string{
	"CSVTimestamp", "CSVChallenge", "CSVGroupName", "CSVStudentName",
	"CSVWhat", "CSVWhy", "CSVHow",
}

// Current serializes the given (already filtered and sorted) solutions with
// the columns timestamp, challenge, group, student, what, why, how.
func Current(solutions []model.Solution, t Translator) (string, error) {
	if len(solutions) == 0 {
		return "", ErrNothingToExport
	}
	lines := make([]string, 0, len(solutions)+1)
	lines = append(lines, headerLine(currentHeader, t))
	for _, sol := range solutions {
		lines = append(lines, row(solutionFields(sol)))
	}
	return strings.Join(lines, "\n"), nil
}

// All serializes every solution across every workshop, each row prefixed with
// the owning workshop's name.
func All(rows []model.ExportRow, t Translator) (string, error) {
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}
	header := append([]string{"CSVWorkshopName"}, currentHeader...)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, headerLine(header, t))
	for _, r := range rows {
		lines = append(lines, row(append([]string{r.WorkshopName}, solutionFields(r.Solution)...)))
	}
	return strings.Join(lines, "\n"), nil
}

func solutionFields(sol model.Solution) []string {
	return []string{
		model.FormatTimestamp(sol.CreatedAt),
		sol.Challenge,
		sol.GroupName,
		sol.StudentName,
		sol.What,
		sol.Why,
		sol.How,
	}
}

func headerLine(ids []string, t Translator) string {
	fields := make([]string, len(ids))
	for i, id := range ids {
		fields[i] = t(id)
	}
	return row(fields)
}

// row joins fields into one CSV line. Every field is wrapped in double quotes
// with internal double quotes doubled.
func row(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// Filename derives the download filename for a current-workshop export from
// the workshop name and date.
func Filename(workshopName string, now time.Time) string {
	return workshopName + "_" + now.Format("2006-01-02") + ".csv"
}

// AllFilename derives the download filename for an all-workshops export.
func AllFilename(label string, now time.Time) string {
	return label + "_" + now.Format("2006-01-02") + ".csv"
}
