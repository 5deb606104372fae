package handler

import (
	"bytes"
	"fmt"
	"net/http"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	mw "github.com/unforum-dev/unforum/frontend/internal/middleware"
	"github.com/unforum-dev/unforum/frontend/internal/view"
	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
	"github.com/unforum-dev/unforum/shared/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) frontend_domain.CommonTemplateData {
	session := mw.GetSession(r)
	return frontend_domain.CommonTemplateData{
		Error:         mw.PopFlash(w, r, mw.FlashError),
		Success:       mw.PopFlash(w, r, mw.FlashSuccess),
		User:          session.User,
		IsAdmin:       session.IsAdmin,
		LocalOverride: session.LocalOverride,
		CSRFToken:     mw.CSRFToken(r),
		Validation:    frontend_domain.DefaultValidation,
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, http.StatusOK, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, status int, name string, data any, errMsg string) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	mw.RedirectWithFlash(w, r, target, mw.FlashError, msg, h.Public.SecureCookies)
}

func (h *Handler) redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, msg string) {
	mw.RedirectWithFlash(w, r, target, mw.FlashSuccess, msg, h.Public.SecureCookies)
}

// userMessage turns a backend error into text safe to show: client errors
// keep the backend's message, everything else is generic.
func userMessage(err error) string {
	if code := internal_errors.StatusCode(err); code < http.StatusInternalServerError {
		return err.Error()
	}
	return "Something went wrong, please try again later."
}

// renderThreadCards prepares list cards, adding plain-text excerpts.
func (h *Handler) renderThreadCards(threads []domain.Thread) []view.ThreadCard {
	cards := view.ThreadCards(threads, h.now())
	for i := range cards {
		cards[i].Excerpt = h.TextProcessor.Excerpt(cards[i].Content, 200)
	}
	return cards
}
