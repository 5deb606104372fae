package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/identity"
)

func TestYourThreadsSignedOut(t *testing.T) {
	h := newTestHandler(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.YourThreadsGetHandler(rec, httptest.NewRequest(http.MethodGet, "/your-threads", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sign in")
}

func TestYourThreads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/me/threads", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.ThreadsResponse{Threads: []domain.Thread{thread("t1", "Mine", 0, 0, 0)}})
	})
	h := newTestHandler(t, mux)

	rec := httptest.NewRecorder()
	h.YourThreadsGetHandler(rec, signedIn(httptest.NewRequest(http.MethodGet, "/your-threads", nil), &identity.User{Id: "u1"}, false))

	assert.Equal(t, "[Mine delete:true]", rec.Body.String())
}

func TestYourThreadsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/me/threads", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.ThreadsResponse{})
	})
	h := newTestHandler(t, mux)

	rec := httptest.NewRecorder()
	h.YourThreadsGetHandler(rec, signedIn(httptest.NewRequest(http.MethodGet, "/your-threads", nil), &identity.User{Id: "u1"}, false))

	assert.NotEmpty(t, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "[")
}
