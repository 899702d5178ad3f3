// Package pages provides the page content feature for the UI.
package pages

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-labs/inkwell/internal/service"
	"github.com/inkwell-labs/inkwell/internal/ui/features/common"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// Handlers provides HTTP handlers for the pages feature.
type Handlers struct {
	svc *service.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// pagePath extracts the page path from the wildcard segment.
func pagePath(r *http.Request) string {
	return strings.Trim(chi.URLParam(r, "*"), "/")
}

// Fetch returns the parsed document at the requested path.
func (h *Handlers) Fetch(w http.ResponseWriter, r *http.Request) {
	path := pagePath(r)
	if !nav.ValidPath(path) {
		common.WriteError(w, service.ErrInvalidPath)
		return
	}

	doc, err := h.svc.FetchPage(r.Context(), path)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]any{
		"path": path,
		"meta": doc.Meta,
		"body": doc.Body,
	})
}

// createRequest is the JSON shape of POST /api/pages.
type createRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Create creates a new page at the requested path.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	if err := h.svc.CreatePage(r.Context(), req.Path, req.Name); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]string{"path": req.Path})
}

// saveRequest is the JSON shape of PUT /api/pages/*.
type saveRequest struct {
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// Save writes page content, renaming the page when the display name
// no longer matches its slug.
func (h *Handlers) Save(w http.ResponseWriter, r *http.Request) {
	path := pagePath(r)
	if !nav.ValidPath(path) {
		common.WriteError(w, service.ErrInvalidPath)
		return
	}

	var req saveRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	newPath, err := h.svc.SavePageContent(r.Context(), path, req.Content, req.Name)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"path": newPath})
}
