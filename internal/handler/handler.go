// Package handler wires the HTTP routes to the store and the
// derivation engine.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ideaboard/internal/handler/views"
	"ideaboard/internal/i18n"
	"ideaboard/internal/model"
	"ideaboard/internal/stats"
	"ideaboard/internal/store"
)

type Handler struct {
	store  *store.Store
	engine *stats.Engine
	cfg    model.AppConfig
}

func New(st *store.Store, engine *stats.Engine, cfg model.AppConfig) *Handler {
	return &Handler{store: st, engine: engine, cfg: cfg}
}

// Routes registers all application routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)

	r.Get("/submit", h.handleStudentForm)
	r.Post("/submit", h.handleSubmit)

	r.Get("/dashboard", h.handleDashboard)

	r.Get("/admin/login", h.handleLoginForm)
	r.Post("/admin/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/admin/logout", h.handleLogout)

		r.Get("/admin/workshops", h.handleWorkshops)
		r.Post("/admin/workshops", h.handleCreateWorkshop)
		r.Post("/admin/workshops/{id}/switch", h.handleSwitchWorkshop)
		r.Get("/admin/workshops/{id}/delete", h.handleConfirmDelete)
		r.Post("/admin/workshops/{id}/delete", h.handleDeleteWorkshop)

		r.Get("/admin/challenges", h.handleChallenges)
		r.Post("/admin/challenges", h.handleAddChallenge)
		r.Post("/admin/challenges/toggle", h.handleToggleChallenge)
		r.Post("/admin/challenges/delete", h.handleDeleteChallenge)

		r.Get("/admin/data", h.handleData)
		r.Get("/admin/data/export", h.handleExport)
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "landing.html", views.LandingData{Page: views.NewPage(r.Context())})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := views.Render(w, name, data); err != nil {
		slog.Error("render failed", "template", name, "error", err)
	}
}

// renderNoWorkshop serves the empty state shown when no workshop is
// current.
func (h *Handler) renderNoWorkshop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.render(w, r, "no_workshop.html", views.NoWorkshopData{
		Page:    views.NewPage(ctx),
		Message: i18n.T(ctx, "NoCurrentWorkshop"),
	})
}

func internalError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
