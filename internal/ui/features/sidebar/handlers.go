// Package sidebar provides the navigation tree feature for the UI.
package sidebar

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/inkwell-labs/inkwell/internal/service"
	"github.com/inkwell-labs/inkwell/internal/ui/features/common"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// Handlers provides HTTP handlers for the sidebar feature.
type Handlers struct {
	svc          *service.Service
	sessionStore sessions.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *service.Service, sessionStore sessions.Store) *Handlers {
	return &Handlers{svc: svc, sessionStore: sessionStore}
}

// treeResponse is the JSON shape of GET /api/nav.
type treeResponse struct {
	Tree  nav.Tree `json:"tree"`
	Open  []string `json:"open"`
	Stale bool     `json:"stale"`
}

// Tree returns the display-sorted navigation tree.
func (h *Handlers) Tree(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DisplayTree(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	state := common.LoadOpenState(h.sessionStore, r)
	open := make([]string, 0, len(state))
	for p, isOpen := range state {
		if isOpen {
			open = append(open, p)
		}
	}

	common.WriteJSON(w, http.StatusOK, treeResponse{
		Tree:  res.Tree,
		Open:  open,
		Stale: res.Stale,
	})
}

// saveRequest is the JSON shape of PUT /api/nav.
type saveRequest struct {
	Tree nav.Tree `json:"tree"`
}

// Save persists a new configured ordering.
func (h *Handlers) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	if err := h.svc.SaveConfiguredTree(r.Context(), req.Tree); err != nil {
		common.WriteError(w, err)
		return
	}

	h.Tree(w, r)
}

// toggleRequest is the JSON shape of POST /api/nav/open.
type toggleRequest struct {
	Path string `json:"path"`
}

// Toggle flips the accordion state of a folder and stores it in the session.
func (h *Handlers) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	res, err := h.svc.DisplayTree(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	state := common.LoadOpenState(h.sessionStore, r)
	state.Toggle(res.Tree, req.Path)

	if err := common.SaveOpenState(h.sessionStore, w, r, state); err != nil {
		common.WriteJSON(w, http.StatusInternalServerError, common.ErrorBody{Error: err.Error()})
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]bool{"open": state.IsOpen(req.Path)})
}

// folderRequest is the JSON shape of POST /api/nav/folders.
type folderRequest struct {
	Path string `json:"path"`
}

// CreateFolder creates an empty folder at the requested path.
func (h *Handlers) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	if err := h.svc.CreateFolder(r.Context(), req.Path); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]string{"path": req.Path})
}

// renameRequest is the JSON shape of POST /api/nav/rename.
type renameRequest struct {
	Path    string `json:"path"`
	NewPath string `json:"newPath"`
}

// Rename moves a folder and patches the configured ordering.
func (h *Handlers) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	newPath, err := h.svc.RenameFolder(r.Context(), req.Path, req.NewPath)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"path": newPath})
}

// trashRequest is the JSON shape of POST /api/nav/trash and /api/nav/restore.
type trashRequest struct {
	Path string `json:"path"`
}

// Trash moves an entry into the trash area.
func (h *Handlers) Trash(w http.ResponseWriter, r *http.Request) {
	var req trashRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	trashPath, err := h.svc.MoveToTrash(r.Context(), req.Path)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"trashPath": trashPath})
}

// Restore moves a trashed entry back to its original location.
func (h *Handlers) Restore(w http.ResponseWriter, r *http.Request) {
	var req trashRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	path, err := h.svc.RestoreFromTrash(r.Context(), req.Path)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"path": path})
}

// ListTrash returns the recorded trash entries.
func (h *Handlers) ListTrash(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListTrash(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// deleteRequest is the JSON shape of DELETE /api/nav.
type deleteRequest struct {
	Path string `json:"path"`
}

// Delete permanently removes a page or empty folder.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteJSON(w, http.StatusBadRequest, common.ErrorBody{Error: err.Error()})
		return
	}

	if err := h.svc.Delete(r.Context(), req.Path); err != nil {
		common.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
