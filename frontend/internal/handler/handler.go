package handler

import (
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/unforum-dev/unforum/frontend/internal/apiclient"
	"github.com/unforum-dev/unforum/frontend/internal/markdown"
	"github.com/unforum-dev/unforum/shared/config"
)

type Handler struct {
	Public        config.Public
	TextProcessor *markdown.TextProcessor
	APIClient     *apiclient.APIClient

	mu        sync.RWMutex
	templates map[string]*template.Template
	now       func() time.Time
}

func New(templates map[string]*template.Template, publicCfg config.Public, textProcessor *markdown.TextProcessor, apiClient *apiclient.APIClient) *Handler {
	return &Handler{
		Public:        publicCfg,
		TextProcessor: textProcessor,
		APIClient:     apiClient,
		templates:     templates,
		now:           time.Now,
	}
}

// SetTemplates swaps the parsed templates; used by the development reloader.
func (h *Handler) SetTemplates(templates map[string]*template.Template) {
	h.mu.Lock()
	h.templates = templates
	h.mu.Unlock()
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tmpl, ok := h.templates[name]
	return tmpl, ok
}

func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "frontend/static/favicon.svg")
}
