package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/unforum-dev/unforum/frontend/internal/handler"
	fmw "github.com/unforum-dev/unforum/frontend/internal/middleware"
	"github.com/unforum-dev/unforum/frontend/internal/setup"
	mw "github.com/unforum-dev/unforum/shared/middleware"
	"github.com/unforum-dev/unforum/shared/middleware/metrics"
)

func SetupRouter(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handler
	auth := deps.Auth

	r.Use(metrics.Middleware("web"))
	r.Use(chimw.Recoverer)
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, mw.DefaultCSP))

	// Public routes
	r.Get("/favicon.ico", handler.FaviconHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticPath))))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(fmw.CSRFCookie(fmw.CSRFConfig{SecureCookies: deps.Public.SecureCookies}))
		r.Use(fmw.RequireCSRF())
		r.Use(fmw.Session(deps.APIClient))

		r.Get("/", h.IndexGetHandler)
		r.Get("/new-thread", h.NewThreadGetHandler)
		r.Post("/new-thread", h.NewThreadPostHandler)
		r.Get("/your-threads", h.YourThreadsGetHandler)

		r.Route("/thread/{threadId}", func(thread chi.Router) {
			thread.Get("/", h.ThreadGetHandler)
			thread.Post("/like", h.ThreadLikeHandler)
			thread.With(auth.NeedAuth()).Post("/reply", h.ThreadReplyHandler)
			thread.With(auth.NeedAuth()).Post("/delete", h.ThreadDeleteHandler)
		})

		// Admin routes
		r.Route("/tools", func(tools chi.Router) {
			tools.Use(auth.AdminOnly())
			tools.Get("/", h.ToolsGetHandler)
			tools.Post("/seed-popular", h.ToolsSeedPopularHandler)
			tools.Post("/seed-unforum", h.ToolsSeedUnForumHandler)
			tools.Post("/reset", h.ToolsResetHandler)
		})

		if deps.Public.Admin.AllowLocalOverride {
			r.Get("/admin-enable", h.AdminEnableGetHandler)
			r.Post("/admin-enable", h.AdminEnablePostHandler)
		}
	})

	return r
}
