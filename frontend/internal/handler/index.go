package handler

import (
	"net/http"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	"github.com/unforum-dev/unforum/frontend/internal/view"
	"github.com/unforum-dev/unforum/shared/logger"
)

func (h *Handler) IndexGetHandler(w http.ResponseWriter, r *http.Request) {
	data := frontend_domain.IndexPageData{
		Heading:  "Popular Threads",
		Subtitle: "See what the community is talking about today.",
		ShowAll:  r.URL.Query().Get("all") == "1",
		Empty:    view.EmptyThreads,
	}

	var errMsg string
	threads, err := h.APIClient.ListThreads(r)
	if err != nil {
		logger.Log.Error("listing threads via API", "error", err)
		errMsg = userMessage(err)
	}

	if data.ShowAll {
		data.Heading = "All Threads"
		data.Subtitle = "Every discussion, newest first."
	} else {
		threads = view.Popular(threads)
	}
	data.Threads = h.renderThreadCards(threads)

	h.renderTemplateWithError(w, r, http.StatusOK, "index.html", data, errMsg)
}
