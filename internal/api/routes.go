// Route registration and go-chi router setup.
// Public routes (/, /health) need no credential; every task route requires
// a valid Bearer API key.
package api

import (
	"github.com/devplanhq/plangate/internal/api/handlers"
	apmiddleware "github.com/devplanhq/plangate/internal/api/middleware"
	"github.com/devplanhq/plangate/internal/domain/auth"
	"github.com/devplanhq/plangate/internal/domain/health"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps are the collaborators the router wires into handlers. Everything
// here is read-only after startup and shared by all concurrent requests.
type Deps struct {
	Gate       *auth.Gate
	Dispatcher handlers.Dispatcher
	Health     *health.Reporter
	Repo       handlers.RepoIndexer
	Memory     handlers.MemoryStore
}

// NewRouter creates and configures the chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	healthHandler := handlers.NewHealthHandler(deps.Health)

	// ===== PUBLIC ROUTES (no auth required) =====

	r.Get("/", healthHandler.Banner)
	r.Get("/health", healthHandler.Health)

	// ===== PROTECTED ROUTES (Bearer API key required) =====

	planHandler := handlers.NewPlanHandler(deps.Dispatcher)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Dispatcher)
	repoHandler := handlers.NewRepoHandler(deps.Dispatcher, deps.Repo)
	memoryHandler := handlers.NewMemoryHandler(deps.Memory)

	r.Group(func(r chi.Router) {
		r.Use(apmiddleware.Auth(deps.Gate))

		r.Route("/plan", func(r chi.Router) {
			r.Post("/clarify", planHandler.Clarify)     // POST /plan/clarify
			r.Post("/prd", planHandler.PRD)             // POST /plan/prd
			r.Post("/blueprint", planHandler.Blueprint) // POST /plan/blueprint
			r.Post("/tasks", planHandler.Tasks)         // POST /plan/tasks
		})

		r.Route("/analyze", func(r chi.Router) {
			r.Post("/categorize", analyzeHandler.Categorize) // POST /analyze/categorize
		})

		r.Route("/repo", func(r chi.Router) {
			r.Post("/search", repoHandler.Search)   // POST /repo/search
			r.Post("/index", repoHandler.Index)     // POST /repo/index
			r.Post("/related", repoHandler.Related) // POST /repo/related
		})

		r.Route("/memory", func(r chi.Router) {
			r.Post("/append", memoryHandler.Append) // POST /memory/append
			r.Post("/read", memoryHandler.Read)     // POST /memory/read
		})
	})

	return r
}
