package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	mw "github.com/unforum-dev/unforum/frontend/internal/middleware"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/identity"
)

func toolsBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.StatsResponse{Threads: 12})
	})
	mux.HandleFunc("POST /v1/admin/seed/popular", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.OperationResponse{Success: true, Message: "Seeded popular threads"})
	})
	mux.HandleFunc("POST /v1/admin/seed/unforum", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.OperationResponse{Success: true, Message: "Seeded 50 threads"})
	})
	mux.HandleFunc("POST /v1/admin/reset", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Operation failed", http.StatusInternalServerError)
	})
	return mux
}

func TestToolsGet(t *testing.T) {
	h := newTestHandler(t, toolsBackend())

	rec := httptest.NewRecorder()
	h.ToolsGetHandler(rec, signedIn(httptest.NewRequest(http.MethodGet, "/tools", nil), &identity.User{Id: "admin"}, true))

	assert.Equal(t, "|threads:12|layouts:5", rec.Body.String())
}

func TestToolsOperations(t *testing.T) {
	h := newTestHandler(t, toolsBackend())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		flash   string
		message string
	}{
		{"seed popular", h.ToolsSeedPopularHandler, mw.FlashSuccess, "Seeded popular threads"},
		{"seed unforum", h.ToolsSeedUnForumHandler, mw.FlashSuccess, "Seeded 50 threads"},
		{"reset failure", h.ToolsResetHandler, mw.FlashError, "Operation failed: Something went wrong, please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodPost, "/tools/x", nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/tools", rec.Header().Get("Location"))
			assert.Equal(t, tt.message, flash(t, rec, tt.flash))
		})
	}
}
