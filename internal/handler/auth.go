package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"ideaboard/internal/handler/views"
	"ideaboard/internal/i18n"
)

const sessionCookie = "session"

func (h *Handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", views.LoginData{Page: views.NewPage(r.Context())})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	password := r.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AdminPassword)) != 1 {
		slog.Warn("admin login rejected", "remote", r.RemoteAddr)
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, r, "login.html", views.LoginData{
			Page:  views.NewPage(ctx),
			Error: i18n.T(ctx, "LoginError"),
		})
		return
	}

	token, err := h.store.CreateAdminSession()
	if err != nil {
		internalError(w, "create admin session", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Info("admin logged in", "remote", r.RemoteAddr)
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.store.DeleteAdminSession(c.Value); err != nil {
			slog.Error("delete admin session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// requireAdmin gates the admin routes behind a valid session cookie.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		ok, err := h.store.ValidAdminSession(c.Value)
		if err != nil {
			internalError(w, "validate admin session", err)
			return
		}
		if !ok {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
