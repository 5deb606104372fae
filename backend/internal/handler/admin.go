package handler

import (
	"net/http"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/utils"
)

func writeOperation(w http.ResponseWriter, ok bool, done, failed string) {
	if !ok {
		utils.WriteJSON(w, http.StatusInternalServerError, api.OperationResponse{Success: false, Message: failed})
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.OperationResponse{Success: true, Message: done})
}

func (h *Handler) SeedPopular(w http.ResponseWriter, r *http.Request) {
	ok := h.seeder.SeedPopularThreads(r.Context())
	writeOperation(w, ok, "Seeded 10 popular threads with 25 comments each", "Seeding failed")
}

func (h *Handler) SeedUnForum(w http.ResponseWriter, r *http.Request) {
	ok := h.seeder.SeedUnForumData(r.Context())
	writeOperation(w, ok, "Seeded 50 threads", "Seeding failed")
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ok := h.forum.DeleteAllData(r.Context())
	writeOperation(w, ok, "All threads and posts deleted", "Reset failed")
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.forum.Stats(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StatsResponse{
		Threads:    stats.Threads,
		Posts:      stats.Posts,
		Likes:      stats.Likes,
		Views:      stats.Views,
		ByCategory: stats.ByCategory,
	})
}
