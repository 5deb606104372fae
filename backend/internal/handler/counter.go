package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
	mw "github.com/unforum-dev/unforum/shared/middleware"
	"github.com/unforum-dev/unforum/shared/utils"
)

// LikeThread counts at most one like per visitor. The response carries the
// optimistic value (read + 1) and the value read back after the increment.
func (h *Handler) LikeThread(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	thread := h.forum.GetThread(r.Context(), threadId)
	if thread == nil {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}

	visitor, err := mw.VisitorKey(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	first, err := h.likes.FirstLike(r.Context(), threadId, visitor)
	if err != nil {
		// guard outage must not block likes
		logger.Log.Error("like guard unavailable", "thread_id", threadId, "error", err)
		first = true
	}
	if !first {
		likes := thread.Likes
		utils.WriteJSON(w, http.StatusOK, api.CounterResponse{
			ThreadId:   threadId,
			Field:      string(domain.FieldLikes),
			Optimistic: likes,
			Confirmed:  &likes,
			Duplicate:  true,
		})
		return
	}

	h.forum.IncrementThreadLikes(r.Context(), threadId)
	h.writeCounter(w, r, thread.Likes+1, domain.FieldLikes)
}

func (h *Handler) ViewThread(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	thread := h.forum.GetThread(r.Context(), threadId)
	if thread == nil {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}

	h.forum.IncrementThreadViews(r.Context(), threadId)
	h.writeCounter(w, r, thread.ViewCount+1, domain.FieldViewCount)
}

// writeCounter re-reads the thread to reconcile the optimistic value. A failed
// re-read leaves Confirmed empty.
func (h *Handler) writeCounter(w http.ResponseWriter, r *http.Request, optimistic int, field domain.CounterField) {
	threadId := chi.URLParam(r, "threadId")
	resp := api.CounterResponse{ThreadId: threadId, Field: string(field), Optimistic: optimistic}

	if fresh := h.forum.GetThread(r.Context(), threadId); fresh != nil {
		confirmed := fresh.Likes
		if field == domain.FieldViewCount {
			confirmed = fresh.ViewCount
		}
		resp.Confirmed = &confirmed
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
