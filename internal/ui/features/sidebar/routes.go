package sidebar

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/inkwell-labs/inkwell/internal/service"
)

// SetupRoutes registers sidebar routes on the router.
func SetupRoutes(router chi.Router, svc *service.Service, sessionStore sessions.Store) error {
	handlers := NewHandlers(svc, sessionStore)

	router.Route("/api/nav", func(r chi.Router) {
		r.Get("/", handlers.Tree)
		r.Put("/", handlers.Save)
		r.Delete("/node", handlers.Delete)
		r.Post("/open", handlers.Toggle)
		r.Post("/folders", handlers.CreateFolder)
		r.Post("/rename", handlers.Rename)
		r.Post("/trash", handlers.Trash)
		r.Get("/trash", handlers.ListTrash)
		r.Post("/restore", handlers.Restore)
	})

	return nil
}
