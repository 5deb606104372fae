package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/utils"
)

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts := h.forum.ListPostsByThread(r.Context(), chi.URLParam(r, "threadId"))
	utils.WriteJSON(w, http.StatusOK, api.PostsResponse{Posts: posts})
}

// CreatePost requires a signed-in user; the router enforces it.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")

	var body api.CreatePostRequest
	if err := h.decodeBody(w, r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.checkContent(body.Content); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if h.forum.GetThread(r.Context(), threadId) == nil {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}

	id, err := h.forum.CreatePost(r.Context(), domain.PostCreationData{
		ThreadId: threadId,
		Content:  body.Content,
		Author:   h.author(r, false),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.CreatePostResponse{Id: id})
}
