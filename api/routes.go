// ABOUTME: Route table for the local API and HTML pages
// ABOUTME: JSON lives under /api/v1; the read-only pages sit at the root
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harperreed/opslog/web"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler, pages *web.Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(h.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/stats", h.Stats)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/graph.svg", h.Graph)

		r.Get("/days", h.ListDays)
		r.Get("/days/{date}", h.GetDay)
		r.Post("/days/{date}", h.MergeDay)
		r.Post("/days/{date}/calls", h.LogCall)
		r.Post("/days/{date}/assessments", h.LogAssessment)

		r.Get("/contacts", h.ListContacts)
		r.Post("/contacts", h.AcquireContact)
		r.Get("/contacts/{id}", h.GetContact)

		r.Get("/export.csv", h.ExportCSV)
		r.Get("/export.json", h.ExportJSON)
		r.Get("/insights", h.Insights)
	})

	if pages != nil {
		pages.Mount(r)
	}

	return r
}
