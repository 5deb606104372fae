package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/errors"
	mw "github.com/unforum-dev/unforum/shared/middleware"
	"github.com/unforum-dev/unforum/shared/utils"
)

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	var threads []domain.Thread
	if author := r.URL.Query().Get("author"); author != "" {
		threads = h.forum.ListThreadsByAuthor(r.Context(), author)
	} else {
		threads = h.forum.ListThreads(r.Context())
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadsResponse{Threads: threads})
}

func (h *Handler) MyThreads(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	threads := h.forum.ListThreadsByAuthor(r.Context(), user.Id)
	utils.WriteJSON(w, http.StatusOK, api.ThreadsResponse{Threads: threads})
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := h.decodeBody(w, r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.checkContent(body.Content); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	category, ok := domain.FindCategory(body.CategoryId)
	if !ok {
		utils.WriteErrorAndStatusCode(w, errors.BadRequest("Unknown category"))
		return
	}

	tags := make(domain.Tags, 0, len(body.Tags))
	for _, tag := range body.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	id, err := h.forum.CreateThread(r.Context(), domain.ThreadCreationData{
		Title:    strings.TrimSpace(body.Title),
		Content:  body.Content,
		Author:   h.author(r, body.Anonymous),
		Category: category,
		Tags:     tags,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.CreateThreadResponse{Id: id})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread := h.forum.GetThread(r.Context(), chi.URLParam(r, "threadId"))
	if thread == nil {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadResponse{Thread: *thread})
}

// DeleteThread is allowed to the thread's author and to admins.
func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	thread := h.forum.GetThread(r.Context(), threadId)
	if thread == nil {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}

	session := mw.GetSession(r)
	user := session.CurrentUser()
	owner := user != nil && thread.OwnedBy(user.Id)
	if !owner && !session.IsAdmin() {
		utils.WriteErrorAndStatusCode(w, errors.Forbidden("Only the author can delete this thread"))
		return
	}

	if err := h.forum.DeleteThread(r.Context(), threadId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
