// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/inkwell-labs/inkwell/internal/service"
	pagesFeature "github.com/inkwell-labs/inkwell/internal/ui/features/pages"
	sidebarFeature "github.com/inkwell-labs/inkwell/internal/ui/features/sidebar"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, svc *service.Service, sessionStore *sessions.CookieStore) error {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if err := sidebarFeature.SetupRoutes(router, svc, sessionStore); err != nil {
		return err
	}

	if err := pagesFeature.SetupRoutes(router, svc); err != nil {
		return err
	}

	return nil
}
