// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

// ArchetypesHandler handles archetype dictionary requests.
type ArchetypesHandler struct {
	deps Dependencies
}

// NewArchetypesHandler creates a new archetypes handler.
func NewArchetypesHandler(deps Dependencies) *ArchetypesHandler {
	return &ArchetypesHandler{deps: deps}
}

// HandleGetArchetypes handles GET /archetypes requests.
func (h *ArchetypesHandler) HandleGetArchetypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entries, err := h.deps.Archetypes(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGetArchetype handles GET /archetypes/{cluster_id} requests.
func (h *ArchetypesHandler) HandleGetArchetype(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/archetypes/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id, err := strconv.Atoi(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entry, err := h.deps.Archetype(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
