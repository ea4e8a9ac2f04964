// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// StyleHandler handles style prediction requests.
type StyleHandler struct {
	deps Dependencies
}

// NewStyleHandler creates a new style handler.
func NewStyleHandler(deps Dependencies) *StyleHandler {
	return &StyleHandler{deps: deps}
}

// styleRequest carries one player's raw attributes plus an optional
// similar-player count.
type styleRequest struct {
	Attributes map[string]float64 `json:"attributes"`
	TopN       int                `json:"top_n,omitempty"`
}

func (r styleRequest) validate() error {
	if len(r.Attributes) == 0 {
		return errors.New("missing attributes")
	}
	if r.TopN < 0 {
		return errors.New("top_n must not be negative")
	}
	return nil
}

// HandlePostStyle handles POST /style requests.
func (h *StyleHandler) HandlePostStyle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req styleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.deps.Classify(r.Context(), req.Attributes, req.TopN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
