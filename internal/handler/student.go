package handler

import (
	"errors"
	"net/http"

	"ideaboard/internal/handler/views"
	"ideaboard/internal/i18n"
	"ideaboard/internal/model"
	"ideaboard/internal/stats"
	"ideaboard/internal/store"
)

func (h *Handler) handleStudentForm(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}
	h.renderStudent(w, r, ws, model.Draft{}, "", "")
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}

	draft := model.Draft{
		Challenge:   r.FormValue("challenge"),
		GroupName:   r.FormValue("groupName"),
		StudentName: r.FormValue("studentName"),
		What:        r.FormValue("what"),
		Why:         r.FormValue("why"),
		How:         r.FormValue("how"),
	}
	if verr := draft.Validate(); verr != nil {
		h.renderStudent(w, r, ws, draft, i18n.Td(ctx, verr.MessageID, verr.Data), "")
		return
	}

	if _, err := h.store.InsertSolution(ws.ID, draft); err != nil {
		if errors.Is(err, store.ErrChallengeInactive) {
			// The admin hid the challenge while the form was open.
			draft.Challenge = ""
			h.renderStudent(w, r, ws, draft, i18n.T(ctx, "ChallengeInactive"), "")
			return
		}
		internalError(w, "insert solution", err)
		return
	}
	h.renderStudent(w, r, ws, model.Draft{}, "", i18n.T(ctx, "SubmitSuccess"))
}

func (h *Handler) renderStudent(w http.ResponseWriter, r *http.Request, ws *model.Workshop, draft model.Draft, errMsg, notice string) {
	ctx := r.Context()
	active, err := h.store.ActiveChallenges(ws.ID)
	if err != nil {
		internalError(w, "list active challenges", err)
		return
	}
	h.engine.SortStrings(active)
	total, err := h.store.SolutionCount(ws.ID)
	if err != nil {
		internalError(w, "count solutions", err)
		return
	}
	h.render(w, r, "student.html", views.StudentData{
		Page:             views.NewPage(ctx),
		Total:            total,
		ActiveChallenges: active,
		Draft:            draft,
		MinHowLength:     model.MinHowLength,
		CharCountFmt:     i18n.Td(ctx, "CharCount", map[string]any{"Count": "{c}"}),
		HowWarnFmt:       i18n.Td(ctx, "HowTooShort", map[string]any{"Remaining": "{r}", "Count": "{c}"}),
		HowOKFmt:         i18n.Td(ctx, "HowOK", map[string]any{"Count": "{c}"}),
		Error:            errMsg,
		Notice:           notice,
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}
	solutions, err := h.store.ListSolutions(ws.ID)
	if err != nil {
		internalError(w, "list solutions", err)
		return
	}

	challengeCounts := stats.ChallengeStats(solutions)
	groupCounts := stats.GroupStats(solutions)
	challengeRows := rankRows(stats.Top(challengeCounts, 5))
	for i := range challengeRows {
		challengeRows[i].CountLabel = i18n.Td(ctx, "IdeaCountUnit", map[string]any{"Count": challengeRows[i].Count})
	}
	h.render(w, r, "presenter.html", views.PresenterData{
		Page:         views.NewPage(ctx),
		WorkshopName: ws.Name,
		Total:        len(solutions),
		TopicCount:   len(challengeCounts),
		TeamCount:    len(groupCounts),
		Challenges:   challengeRows,
		Groups:       rankRows(groupCounts),
	})
}

// rankRows converts counts to ranked bars, scaling widths against the
// leading count.
func rankRows(counts []stats.Count) []views.RankRow {
	if len(counts) == 0 {
		return nil
	}
	max := counts[0].Count
	rows := make([]views.RankRow, len(counts))
	for i, c := range counts {
		percent := 0
		if max > 0 {
			percent = c.Count * 100 / max
		}
		rows[i] = views.RankRow{Rank: i + 1, Name: c.Name, Count: c.Count, Percent: percent}
	}
	return rows
}
