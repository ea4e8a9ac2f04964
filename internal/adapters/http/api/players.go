// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"net/url"
	"strings"
)

// PlayersHandler handles historical player profile requests.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetPlayer handles GET /players/{name} requests.
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/players/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	name, err := url.PathUnescape(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	profile, err := h.deps.PlayerProfile(r.Context(), name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
