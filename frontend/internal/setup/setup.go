package setup

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/unforum-dev/unforum/frontend/internal/apiclient"
	"github.com/unforum-dev/unforum/frontend/internal/handler"
	"github.com/unforum-dev/unforum/frontend/internal/markdown"
	mw "github.com/unforum-dev/unforum/frontend/internal/middleware"
	"github.com/unforum-dev/unforum/shared/config"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
)

const (
	baseTemplate           = "base.html"
	partialsTemplate       = "partials.html"
	staticPath             = "frontend/static"
	templateReloadInterval = 5 * time.Second
)

type Dependencies struct {
	Handler    *handler.Handler
	APIClient  *apiclient.APIClient
	Auth       *mw.Auth
	Public     config.Public
	StaticPath string
	CancelFunc context.CancelFunc
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())

	tmplPath := cfg.Public.Frontend.TemplatesPath
	templates, err := loadTemplates(tmplPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	textProcessor := markdown.New()
	apiClient := apiclient.New(cfg.Public.Frontend.ApiURL)

	h := handler.New(templates, cfg.Public, textProcessor, apiClient)
	if os.Getenv("ENV") == "development" {
		startTemplateReloader(ctx, h, tmplPath)
	}

	return &Dependencies{
		Handler:    h,
		APIClient:  apiClient,
		Auth:       mw.NewAuth(cfg.Public.SecureCookies),
		Public:     cfg.Public,
		StaticPath: staticPath,
		CancelFunc: cancel,
	}, nil
}

func add(a, b int) int { return a + b }

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

// layoutLabel is the heading used for a category layout.
func layoutLabel(t domain.CategoryType) string {
	switch t {
	case domain.CategoryJob:
		return "Jobs"
	case domain.CategoryStory:
		return "Stories"
	case domain.CategoryQA:
		return "Q&A"
	case domain.CategoryRoadmap:
		return "Roadmap"
	default:
		return "Forum"
	}
}

// initial is the avatar fallback letter.
func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

var funcs = template.FuncMap{
	"add":         add,
	"dict":        dict,
	"join":        strings.Join,
	"layoutLabel": layoutLabel,
	"initial":     initial,
}

func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		name := f.Name()
		if filepath.Ext(name) != ".html" || name == baseTemplate || name == partialsTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, name),
			path.Join(tmplPath, partialsTemplate),
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

func startTemplateReloader(ctx context.Context, h *handler.Handler, tmplPath string) {
	ticker := time.NewTicker(templateReloadInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				templates, err := loadTemplates(tmplPath)
				if err != nil {
					logger.Log.Error("reloading templates", "error", err)
					continue
				}
				h.SetTemplates(templates)
			}
		}
	}()
}
