package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/unforum-dev/unforum/backend/internal/setup"
	mw "github.com/unforum-dev/unforum/shared/middleware"
	"github.com/unforum-dev/unforum/shared/middleware/metrics"
	rl "github.com/unforum-dev/unforum/shared/middleware/ratelimiter"
)

// New creates and configures a new chi router with all the routes.
// IMPORTANT! a ratelimiter set with .Use limits requests for all endpoints of that group combined
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config

	r.Use(metrics.Middleware("api"))
	if cfg.Public.HTTP.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	// Enable gzip compression for all responses
	r.Use(chimw.Compress(5))

	// setup CORS for frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Backend CSP: strict policy (JSON API only, no scripts/styles needed)
	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(cfg.Public.SecureCookies, backendCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(mw.NoStore)
		v1.Use(authMw.Identify())

		v1.Get("/session", h.Session)
		v1.Get("/categories", h.Categories)

		v1.Route("/threads", func(threads chi.Router) {
			threads.Get("/", h.ListThreads)
			threads.With(mw.RateLimit(rl.Every(cfg.Public.RateLimit.CreateThreadEvery), mw.VisitorKey)).
				Post("/", h.CreateThread)

			threads.Route("/{threadId}", func(thread chi.Router) {
				thread.Get("/", h.GetThread)
				thread.Delete("/", h.DeleteThread)
				thread.Get("/posts", h.ListPosts)
				thread.With(authMw.NeedAuth(), mw.RateLimit(rl.Every(cfg.Public.RateLimit.CreatePostEvery), mw.VisitorKey)).
					Post("/posts", h.CreatePost)
				thread.Post("/like", h.LikeThread)
				thread.Post("/view", h.ViewThread)
			})
		})

		v1.With(authMw.NeedAuth()).Get("/me/threads", h.MyThreads)

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())
			admin.Post("/seed/popular", h.SeedPopular)
			admin.Post("/seed/unforum", h.SeedUnForum)
			admin.Post("/reset", h.Reset)
			admin.Get("/stats", h.Stats)
		})

		if cfg.Public.Admin.AllowLocalOverride {
			v1.Put("/admin-mode", h.EnableAdminMode)
			v1.Delete("/admin-mode", h.DisableAdminMode)
		}
	})

	return r
}
