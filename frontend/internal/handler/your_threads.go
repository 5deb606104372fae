package handler

import (
	"net/http"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	mw "github.com/unforum-dev/unforum/frontend/internal/middleware"
	"github.com/unforum-dev/unforum/frontend/internal/view"
	"github.com/unforum-dev/unforum/shared/logger"
)

func (h *Handler) YourThreadsGetHandler(w http.ResponseWriter, r *http.Request) {
	session := mw.GetSession(r)
	data := frontend_domain.YourThreadsPageData{
		SignedIn: session.User != nil,
		Empty:    view.EmptyYourThreads,
		SignIn:   view.SignInYourThreads,
	}
	if !data.SignedIn {
		h.renderTemplate(w, r, "your_threads.html", data)
		return
	}

	var errMsg string
	threads, err := h.APIClient.MyThreads(r)
	if err != nil {
		logger.Log.Error("listing own threads via API", "error", err)
		errMsg = userMessage(err)
	}
	data.Threads = h.renderThreadCards(threads)
	for i := range data.Threads {
		data.Threads[i].CanDelete = true
	}
	h.renderTemplateWithError(w, r, http.StatusOK, "your_threads.html", data, errMsg)
}
