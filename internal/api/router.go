package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter creates a chi router with all API routes mounted. allowedOrigins
// feeds the CORS policy; an empty list allows any origin.
func NewRouter(h *Handler, allowedOrigins []string) chi.Router {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{slug}", h.GetProject)
	r.Get("/tags", h.ListTags)

	r.With(RequireJSON).Post("/contact", h.SubmitContact)

	return r
}
