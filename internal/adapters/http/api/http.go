// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/feature"
	"github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/internal/domain/vector"
	"github.com/okian/scout/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Classify maps raw attributes to a cluster and archetype, optionally
	// attaching the topN closest historical players.
	Classify(ctx context.Context, attrs map[string]float64, topN int) (service.Classification, error)

	// Similar finds players closest to a named historical player.
	Similar(ctx context.Context, name string, n int) ([]similarity.Match, error)

	// Archetypes returns the full archetype dictionary.
	Archetypes(ctx context.Context) ([]archetype.Entry, error)

	// Archetype returns one archetype entry by cluster id.
	Archetype(ctx context.Context, clusterID int) (archetype.Entry, error)

	// PlayerProfile returns one historical player with cluster assignment.
	PlayerProfile(ctx context.Context, name string) (service.Profile, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	styleHandler      *StyleHandler
	similarHandler    *SimilarHandler
	archetypesHandler *ArchetypesHandler
	playersHandler    *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		styleHandler:      NewStyleHandler(deps),
		similarHandler:    NewSimilarHandler(deps),
		archetypesHandler: NewArchetypesHandler(deps),
		playersHandler:    NewPlayersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/style", MetricsMiddleware(s.styleHandler.HandlePostStyle, "style"))
	mux.HandleFunc("/similar", MetricsMiddleware(s.similarHandler.HandlePostSimilar, "similar"))
	mux.HandleFunc("/archetypes", MetricsMiddleware(s.archetypesHandler.HandleGetArchetypes, "archetypes"))
	mux.HandleFunc("/archetypes/", MetricsMiddleware(s.archetypesHandler.HandleGetArchetype, "archetype"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "player"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var verr *feature.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	writeJSON(w, status, resp)
}

// writeDomainError translates domain failures to HTTP status codes:
// validation -> 400, unknown player/archetype -> 404, dimension mismatch
// (stale or corrupt artifacts) and everything else -> 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *feature.ValidationError
	if errors.As(err, &verr) {
		metrics.RecordValidationFailure()
		writeError(w, http.StatusBadRequest, "invalid_attributes", err)
		return
	}
	if errors.Is(err, similarity.ErrPlayerNotFound) || errors.Is(err, archetype.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	var derr *vector.DimensionError
	if errors.As(err, &derr) {
		metrics.RecordArtifactMismatch()
		writeError(w, http.StatusInternalServerError, "artifact_mismatch", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
