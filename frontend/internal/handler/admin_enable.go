package handler

import (
	"net/http"
	"time"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	"github.com/unforum-dev/unforum/shared/identity"
)

// Admin mode is a browser flag the backend honors only when the local
// override is enabled. These routes exist only in that case.

func (h *Handler) AdminEnableGetHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(identity.AdminModeCookie)
	data := frontend_domain.AdminEnablePageData{Active: err == nil && cookie.Value == "true"}
	h.renderTemplate(w, r, "admin_enable.html", data)
}

func (h *Handler) AdminEnablePostHandler(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Name:     identity.AdminModeCookie,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	if r.PostFormValue("action") == "enable" {
		cookie.Value = "true"
		cookie.MaxAge = int((365 * 24 * time.Hour).Seconds())
		http.SetCookie(w, cookie)
		h.redirectWithSuccess(w, r, "/", "Admin Mode ACTIVATED")
		return
	}
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	h.redirectWithSuccess(w, r, "/", "Admin Mode DISABLED")
}
