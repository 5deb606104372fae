package handler

import (
	"net/http"
	"strings"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
)

func (h *Handler) categories(r *http.Request) []domain.Category {
	categories, err := h.APIClient.Categories(r)
	if err != nil || len(categories) == 0 {
		logger.Log.Warn("loading categories via API, using built-in list", "error", err)
		return domain.Categories
	}
	return categories
}

func (h *Handler) NewThreadGetHandler(w http.ResponseWriter, r *http.Request) {
	data := frontend_domain.NewThreadPageData{
		Categories: h.categories(r),
		CategoryId: r.URL.Query().Get("category"),
	}
	h.renderTemplate(w, r, "new_thread.html", data)
}

func (h *Handler) NewThreadPostHandler(w http.ResponseWriter, r *http.Request) {
	data := frontend_domain.NewThreadPageData{
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Content:    r.PostFormValue("content"),
		CategoryId: r.PostFormValue("category"),
		Tags:       r.PostFormValue("tags"),
		Anonymous:  r.PostFormValue("anonymous") != "",
	}

	fail := func(status int, msg string) {
		data.Categories = h.categories(r)
		h.renderTemplateWithError(w, r, status, "new_thread.html", data, msg)
	}
	if data.Title == "" || strings.TrimSpace(data.Content) == "" {
		fail(http.StatusBadRequest, "Title and content are required.")
		return
	}
	if _, ok := domain.FindCategory(data.CategoryId); !ok {
		fail(http.StatusBadRequest, "Invalid category")
		return
	}

	id, err := h.APIClient.CreateThread(r, api.CreateThreadRequest{
		Title:      data.Title,
		Content:    data.Content,
		CategoryId: data.CategoryId,
		Tags:       splitAndTrim(data.Tags),
		Anonymous:  data.Anonymous,
	})
	if err != nil {
		logger.Log.Error("creating thread via API", "error", err)
		fail(http.StatusBadGateway, "Error creating thread: "+userMessage(err))
		return
	}
	http.Redirect(w, r, threadURL(id), http.StatusSeeOther)
}
