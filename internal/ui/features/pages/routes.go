package pages

import (
	"github.com/go-chi/chi/v5"
	"github.com/inkwell-labs/inkwell/internal/service"
)

// SetupRoutes registers page routes on the router.
func SetupRoutes(router chi.Router, svc *service.Service) error {
	handlers := NewHandlers(svc)

	router.Route("/api/pages", func(r chi.Router) {
		r.Post("/", handlers.Create)
		r.Get("/*", handlers.Fetch)
		r.Put("/*", handlers.Save)
	})

	return nil
}
