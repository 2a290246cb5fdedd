package model

import "time"

// Solution is a single group's What/Why/How submission against one challenge.
// Once created it is never mutated; it disappears only when the owning
// workshop is deleted.
type Solution struct {
	ID          string    `json:"id"`
	WorkshopID  string    `json:"workshop_id"`
	Challenge   string    `json:"challenge"`
	GroupName   string    `json:"group_name"`
	StudentName string    `json:"student_name"`
	What        string    `json:"what"`
	Why         string    `json:"why"`
	How         string    `json:"how"`
	CreatedAt   time.Time `json:"created_at"`
}

// Workshop is an isolated session owning its own challenge activation state
// and submission history.
type Workshop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkshopView combines a workshop with its working set for display.
type WorkshopView struct {
	Workshop         Workshop
	Solutions        []Solution
	ActiveChallenges []string
	CustomChallenges []string
}

// ExportRow is one solution paired with its owning workshop's name, used by
// the all-workshops CSV export.
type ExportRow struct {
	WorkshopName string
	Solution     Solution
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	AdminPassword string // shared admin passphrase, compared verbatim
	Lang          string // UI language (ja, en)
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
}

// FormatTimestamp renders a solution timestamp the way the UI and the CSV
// export show it.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006/01/02 15:04:05")
}
