package handler

import (
	"net/http"
	"time"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/identity"
	mw "github.com/unforum-dev/unforum/shared/middleware"
	"github.com/unforum-dev/unforum/shared/utils"
)

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session := mw.GetSession(r)
	utils.WriteJSON(w, http.StatusOK, api.SessionResponse{
		User:          session.CurrentUser(),
		IsAdmin:       session.IsAdmin(),
		LocalOverride: h.cfg.Public.Admin.AllowLocalOverride,
	})
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.CategoriesResponse{Categories: domain.Categories})
}

// EnableAdminMode sets the client-side admin flag. Only routed when the local
// override is enabled in config.
func (h *Handler) EnableAdminMode(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.adminModeCookie("true", int((365*24*time.Hour).Seconds())))
	utils.WriteJSON(w, http.StatusOK, api.OperationResponse{Success: true, Message: "Admin mode enabled"})
}

func (h *Handler) DisableAdminMode(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.adminModeCookie("", -1))
	utils.WriteJSON(w, http.StatusOK, api.OperationResponse{Success: true, Message: "Admin mode disabled"})
}

func (h *Handler) adminModeCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     identity.AdminModeCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
