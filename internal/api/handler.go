// Package api implements the TalentScope REST API.
// It starts matching runs and serves their rankings and result tables.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talentscope/talentscope/internal/runs"
	"github.com/talentscope/talentscope/pkg/matching"
)

// Handler is the top-level API handler for the TalentScope service.
type Handler struct {
	runs      *runs.Service
	cache     *ResultCache
	threshold float64
}

// NewHandler creates a new API handler. threshold is the final match rate at
// which a candidate counts as qualified in run summaries.
func NewHandler(svc *runs.Service, cache *ResultCache, threshold float64) *Handler {
	if cache == nil {
		cache = NewResultCache(0, nil)
	}
	return &Handler{
		runs:      svc,
		cache:     cache,
		threshold: threshold,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/match", h.handleMatch)

	// Read endpoints
	mux.HandleFunc("GET /api/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/runs/{runID}", h.handleGetRun)
	mux.HandleFunc("GET /api/runs/{runID}/result", h.handleGetResult)
	mux.HandleFunc("GET /api/runs/{runID}/ranking", h.handleRanking)
	mux.HandleFunc("GET /api/runs/{runID}/summary", h.handleSummary)
	mux.HandleFunc("GET /api/runs/{runID}/employees/{employeeID}", h.handleEmployee)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps run and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, runs.ErrRunNotFound), errors.Is(err, runs.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, runs.ErrRunNotCompleted):
		return http.StatusConflict
	case errors.Is(err, runs.ErrRoleRequired), errors.Is(err, matching.ErrInvalidWeights):
		return http.StatusBadRequest
	case errors.Is(err, matching.ErrEmptyBenchmarkSet), errors.Is(err, matching.ErrNoScorableAttributes):
		return http.StatusUnprocessableEntity
	case errors.Is(err, matching.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
