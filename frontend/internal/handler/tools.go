package handler

import (
	"net/http"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
)

const toolsPath = "/tools"

func (h *Handler) ToolsGetHandler(w http.ResponseWriter, r *http.Request) {
	data := frontend_domain.ToolsPageData{Layouts: domain.CategoryTypes}
	stats, err := h.APIClient.Stats(r)
	if err != nil {
		logger.Log.Error("loading stats via API", "error", err)
		data.StatsErr = userMessage(err)
	}
	data.Stats = stats
	h.renderTemplate(w, r, "tools.html", data)
}

func (h *Handler) ToolsSeedPopularHandler(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, r, "seed popular", h.APIClient.SeedPopular)
}

func (h *Handler) ToolsSeedUnForumHandler(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, r, "seed unforum", h.APIClient.SeedUnForum)
}

func (h *Handler) ToolsResetHandler(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, r, "reset", h.APIClient.Reset)
}

func (h *Handler) runOperation(w http.ResponseWriter, r *http.Request, name string, op func(*http.Request) (api.OperationResponse, error)) {
	resp, err := op(r)
	if err != nil {
		logger.Log.Error("admin operation failed", "operation", name, "error", err)
		h.redirectWithError(w, r, toolsPath, "Operation failed: "+userMessage(err))
		return
	}
	h.redirectWithSuccess(w, r, toolsPath, resp.Message)
}
