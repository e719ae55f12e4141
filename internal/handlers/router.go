package handlers

import (
	"net/http"
	"taskKeeper/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	RateLimit      int
	LocalOnly      bool
	AllowedOrigins []string
}

func NewRouter(h *TaskHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	if opts.LocalOnly {
		r.Use(middleware.LocalOnly)
	}
	if opts.RateLimit > 0 {
		r.Use(middleware.RateLimit(opts.RateLimit))
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
			MaxAge:         300,
		}))
	}

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)     // GET /tasks?q=
		r.Post("/", h.PostTask)     // POST /tasks
		r.Delete("/", h.ClearTasks) // DELETE /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", h.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", h.DeleteTaskByID) // DELETE /tasks/{id}

			r.Post("/toggle", h.ToggleTask) // POST /tasks/{id}/toggle
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.GetSettings)
		r.Put("/sort", h.SetSortBy)
		r.Put("/filter", h.SetFilterBy)
		r.Post("/dark-mode/toggle", h.ToggleDarkMode)
	})

	r.Get("/health", h.HealthCheck)
	return r
}
