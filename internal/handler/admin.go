package handler

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ideaboard/internal/export"
	"ideaboard/internal/handler/views"
	"ideaboard/internal/i18n"
	"ideaboard/internal/model"
	"ideaboard/internal/stats"
	"ideaboard/internal/store"
)

func (h *Handler) handleWorkshops(w http.ResponseWriter, r *http.Request) {
	h.renderWorkshops(w, r, "")
}

func (h *Handler) renderWorkshops(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctx := r.Context()
	workshops, err := h.store.ListWorkshops()
	if err != nil {
		internalError(w, "list workshops", err)
		return
	}
	var currentID string
	if cur, err := h.store.CurrentWorkshop(); err != nil {
		internalError(w, "current workshop", err)
		return
	} else if cur != nil {
		currentID = cur.ID
	}
	h.render(w, r, "admin_workshops.html", views.WorkshopsData{
		Page:      views.NewPage(ctx),
		Workshops: workshops,
		CurrentID: currentID,
		Error:     errMsg,
	})
}

func (h *Handler) handleCreateWorkshop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := h.store.CreateWorkshop(r.FormValue("name")); err != nil {
		if errors.Is(err, store.ErrWorkshopNameEmpty) {
			h.renderWorkshops(w, r, i18n.T(ctx, "WorkshopNameEmpty"))
			return
		}
		internalError(w, "create workshop", err)
		return
	}
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) handleSwitchWorkshop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.store.SwitchWorkshop(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrWorkshopNotFound) {
			h.renderWorkshops(w, r, i18n.T(ctx, "WorkshopNotFound"))
			return
		}
		internalError(w, "switch workshop", err)
		return
	}
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws, err := h.store.GetWorkshop(chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, "get workshop", err)
		return
	}
	if ws == nil {
		http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
		return
	}
	h.render(w, r, "confirm_delete.html", views.ConfirmDeleteData{
		Page:     views.NewPage(ctx),
		Workshop: *ws,
		Prompt:   i18n.Td(ctx, "ConfirmDeleteWorkshop", map[string]any{"Name": ws.Name}),
	})
}

// handleDeleteWorkshop only deletes when the confirm form was actually
// submitted; navigating away leaves everything unchanged.
func (h *Handler) handleDeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
		return
	}
	if err := h.store.DeleteWorkshop(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrWorkshopNotFound) {
			http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
			return
		}
		internalError(w, "delete workshop", err)
		return
	}
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) handleChallenges(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}
	h.renderChallenges(w, r, ws, "")
}

func (h *Handler) renderChallenges(w http.ResponseWriter, r *http.Request, ws *model.Workshop, errMsg string) {
	ctx := r.Context()
	customs, err := h.store.CustomChallenges(ws.ID)
	if err != nil {
		internalError(w, "list custom challenges", err)
		return
	}
	active, err := h.store.ActiveChallenges(ws.ID)
	if err != nil {
		internalError(w, "list active challenges", err)
		return
	}
	activeSet := make(map[string]bool, len(active))
	for _, name := range active {
		activeSet[name] = true
	}

	data := views.ChallengesData{
		Page:         views.NewPage(ctx),
		WorkshopName: ws.Name,
		ActiveCount:  i18n.Td(ctx, "ActiveChallengesCount", map[string]any{"Count": len(active)}),
		Error:        errMsg,
	}
	for _, name := range h.store.Catalog() {
		data.Defaults = append(data.Defaults, views.ChallengeItem{Name: name, Active: activeSet[name]})
	}
	for _, name := range customs {
		data.Customs = append(data.Customs, views.ChallengeItem{Name: name, Active: activeSet[name]})
	}
	h.render(w, r, "admin_challenges.html", data)
}

func (h *Handler) handleAddChallenge(w http.ResponseWriter, r *http.Request) {
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
	if err := h.store.AddCustomChallenge(ws.ID, r.FormValue("text")); err != nil {
		switch {
		case errors.Is(err, store.ErrChallengeEmpty):
			h.renderChallenges(w, r, ws, i18n.T(ctx, "ChallengeEmpty"))
		case errors.Is(err, store.ErrChallengeExists):
			h.renderChallenges(w, r, ws, i18n.T(ctx, "ChallengeExists"))
		default:
			internalError(w, "add challenge", err)
		}
		return
	}
	http.Redirect(w, r, "/admin/challenges", http.StatusSeeOther)
}

func (h *Handler) handleToggleChallenge(w http.ResponseWriter, r *http.Request) {
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
	if err := h.store.ToggleChallengeActive(ws.ID, r.FormValue("name")); err != nil {
		if errors.Is(err, store.ErrChallengeUnknown) {
			h.renderChallenges(w, r, ws, i18n.T(ctx, "ChallengeUnknown"))
			return
		}
		internalError(w, "toggle challenge", err)
		return
	}
	http.Redirect(w, r, "/admin/challenges", http.StatusSeeOther)
}

func (h *Handler) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}
	if err := h.store.DeleteCustomChallenge(ws.ID, r.FormValue("name")); err != nil {
		internalError(w, "delete challenge", err)
		return
	}
	http.Redirect(w, r, "/admin/challenges", http.StatusSeeOther)
}

func (h *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}
	data, err := h.buildDataView(r, ws)
	if err != nil {
		internalError(w, "build data view", err)
		return
	}
	h.render(w, r, "admin_data.html", data)
}

// queryFromRequest reads the filter/sort parameters, falling back to
// the defaults for unknown values.
func queryFromRequest(r *http.Request) stats.Query {
	q := stats.Query{
		Search:    r.FormValue("q"),
		Challenge: r.FormValue("challenge"),
		Group:     r.FormValue("group"),
		Length:    stats.LengthAll,
		Sort:      stats.SortNewest,
	}
	switch v := stats.LengthBucket(r.FormValue("length")); v {
	case stats.LengthShort, stats.LengthMedium, stats.LengthLong:
		q.Length = v
	}
	switch v := stats.SortOrder(r.FormValue("sort")); v {
	case stats.SortOldest, stats.SortChallenge, stats.SortGroup:
		q.Sort = v
	}
	return q
}

func (h *Handler) buildDataView(r *http.Request, ws *model.Workshop) (views.DataData, error) {
	ctx := r.Context()
	q := queryFromRequest(r)

	solutions, err := h.store.ListSolutions(ws.ID)
	if err != nil {
		return views.DataData{}, err
	}
	challenges, err := h.store.UniqueChallenges(ws.ID)
	if err != nil {
		return views.DataData{}, err
	}
	groups, err := h.store.UniqueGroups(ws.ID)
	if err != nil {
		return views.DataData{}, err
	}

	shown := h.engine.Apply(solutions, q)
	data := views.DataData{
		Page:         views.NewPage(ctx),
		WorkshopName: ws.Name,
		Query: views.DataQuery{
			Search:    q.Search,
			Challenge: q.Challenge,
			Group:     q.Group,
			Length:    string(q.Length),
			Sort:      string(q.Sort),
		},
		Challenges: challenges,
		Groups:     groups,
		ShownCount: len(shown),
		TotalCount: len(solutions),
		GroupCount: len(groups),
	}
	for _, sol := range shown {
		data.Rows = append(data.Rows, views.SolutionRow{
			Timestamp:   model.FormatTimestamp(sol.CreatedAt),
			Challenge:   sol.Challenge,
			GroupName:   sol.GroupName,
			StudentName: sol.StudentName,
			What:        sol.What,
			Why:         sol.Why,
			How:         sol.How,
		})
	}
	return data, nil
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	translate := func(msgID string) string { return i18n.T(ctx, msgID) }

	ws, err := h.store.CurrentWorkshop()
	if err != nil {
		internalError(w, "current workshop", err)
		return
	}

	var csv, filename string
	if r.FormValue("scope") == "all" {
		rows, err := h.store.ExportAll()
		if err != nil {
			internalError(w, "export all", err)
			return
		}
		csv, err = export.All(rows, translate)
		if err != nil {
			h.renderExportError(w, r, ws, err)
			return
		}
		filename = export.AllFilename(translate(export.AllWorkshopsLabel), time.Now())
	} else {
		if ws == nil {
			h.renderNoWorkshop(w, r)
			return
		}
		solutions, err := h.store.ListSolutions(ws.ID)
		if err != nil {
			internalError(w, "list solutions", err)
			return
		}
		shown := h.engine.Apply(solutions, queryFromRequest(r))
		csv, err = export.Current(shown, translate)
		if err != nil {
			h.renderExportError(w, r, ws, err)
			return
		}
		filename = export.Filename(ws.Name, time.Now())
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Write([]byte(csv))
}

// renderExportError shows the data tab again with the export failure
// instead of sending a file.
func (h *Handler) renderExportError(w http.ResponseWriter, r *http.Request, ws *model.Workshop, err error) {
	if !errors.Is(err, export.ErrNothingToExport) {
		internalError(w, "export csv", err)
		return
	}
	if ws == nil {
		h.renderNoWorkshop(w, r)
		return
	}
	data, buildErr := h.buildDataView(r, ws)
	if buildErr != nil {
		internalError(w, "build data view", buildErr)
		return
	}
	data.Error = i18n.T(r.Context(), "NothingToExport")
	h.render(w, r, "admin_data.html", data)
}
