// Package views renders the application's HTML pages from embedded
// templates. Static labels are translated inside the templates via the Page
// helper; composed messages (validation errors, counters) are built by the
// handlers and passed in as finished strings.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"ideaboard/internal/i18n"
	"ideaboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(
	template.New("").Funcs(template.FuncMap{
		"fmtTime": model.FormatTimestamp,
	}).ParseFS(templateFS, "templates/*.html"),
)

// Render writes the named page template with the given data.
func Render(w io.Writer, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// Page exposes translation helpers to templates. Every page data struct
// embeds it.
type Page struct {
	ctx context.Context
}

// NewPage wraps a request context for template rendering.
func NewPage(ctx context.Context) Page {
	return Page{ctx: ctx}
}

// T translates a static label by message ID.
func (p Page) T(id string) string {
	return i18n.T(p.ctx, id)
}

// LandingData drives the role-select landing page.
type LandingData struct {
	Page
}

// LoginData drives the admin passphrase page.
type LoginData struct {
	Page
	Error string
}

// WorkshopsData drives the admin workshop-management tab.
type WorkshopsData struct {
	Page
	Workshops []model.Workshop
	CurrentID string
	Error     string
}

// ConfirmDeleteData drives the destructive-action confirmation page.
type ConfirmDeleteData struct {
	Page
	Workshop model.Workshop
	Prompt   string
}

// ChallengeItem is one toggleable challenge row.
type ChallengeItem struct {
	Name   string
	Active bool
}

// ChallengesData drives the admin challenge-management tab.
type ChallengesData struct {
	Page
	WorkshopName string
	ActiveCount  string
	Defaults     []ChallengeItem
	Customs      []ChallengeItem
	Error        string
}

// SolutionRow is one rendered row of the idea table.
type SolutionRow struct {
	Timestamp   string
	Challenge   string
	GroupName   string
	StudentName string
	What        string
	Why         string
	How         string
}

// DataQuery echoes the active filter/sort parameters back into the form.
type DataQuery struct {
	Search    string
	Challenge string
	Group     string
	Length    string
	Sort      string
}

// DataData drives the admin data-management tab.
type DataData struct {
	Page
	WorkshopName string
	Query        DataQuery
	Challenges   []string
	Groups       []string
	Rows         []SolutionRow
	ShownCount   int
	TotalCount   int
	GroupCount   int
	Error        string
}

// StudentData drives the student submission form. The *Fmt fields are
// localized strings with {c}/{r} placeholders the page's counter script
// fills in client-side.
type StudentData struct {
	Page
	Total            int
	ActiveChallenges []string
	Draft            model.Draft
	MinHowLength     int
	CharCountFmt     string
	HowWarnFmt       string
	HowOKFmt         string
	Error            string
	Notice           string
}

// RankRow is one bar of a presenter ranking. CountLabel, when set, is a
// localized count phrase shown instead of the bare number.
type RankRow struct {
	Rank       int
	Name       string
	Count      int
	CountLabel string
	Percent    int
}

// PresenterData drives the presenter dashboard.
type PresenterData struct {
	Page
	WorkshopName string
	Total        int
	TopicCount   int
	TeamCount    int
	Challenges   []RankRow
	Groups       []RankRow
}

// NoWorkshopData drives the pages shown when no workshop is current.
type NoWorkshopData struct {
	Page
	Message string
}
