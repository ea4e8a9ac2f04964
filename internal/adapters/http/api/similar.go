// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// SimilarHandler handles similar-player search requests.
type SimilarHandler struct {
	deps Dependencies
}

// NewSimilarHandler creates a new similar handler.
func NewSimilarHandler(deps Dependencies) *SimilarHandler {
	return &SimilarHandler{deps: deps}
}

// similarRequest names a historical player and how many neighbors to return.
// A zero TopN falls back to the configured default.
type similarRequest struct {
	PlayerName string `json:"player_name"`
	TopN       int    `json:"top_n,omitempty"`
}

func (r similarRequest) validate() error {
	switch {
	case strings.TrimSpace(r.PlayerName) == "":
		return errors.New("missing player_name")
	case r.TopN < 0:
		return errors.New("top_n must not be negative")
	}
	return nil
}

type similarResponse struct {
	PlayerName     string `json:"player_name"`
	SimilarPlayers any    `json:"similar_players"`
}

// HandlePostSimilar handles POST /similar requests.
func (h *SimilarHandler) HandlePostSimilar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req similarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	matches, err := h.deps.Similar(r.Context(), req.PlayerName, req.TopN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, similarResponse{PlayerName: req.PlayerName, SimilarPlayers: matches})
}
