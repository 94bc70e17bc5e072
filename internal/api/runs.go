package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/talentscope/talentscope/internal/runs"
	"github.com/talentscope/talentscope/pkg/benchmark"
	"github.com/talentscope/talentscope/pkg/matching"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// matchRequest starts a run. Benchmarks may be given as a list, as free
// text ("EMP100012, EMP100034; 312"), or both.
type matchRequest struct {
	RoleName     string             `json:"role_name"`
	LevelName    string             `json:"job_level"`
	Purpose      string             `json:"role_purpose"`
	BenchmarkIDs []string           `json:"benchmark_ids"`
	Benchmarks   string             `json:"benchmarks"`
	Weights      map[string]float64 `json:"weights"`
}

type matchResponse struct {
	Run     *runs.Run             `json:"run"`
	Summary matching.Summary      `json:"summary"`
	Ranking []matching.FinalScore `json:"ranking"`
}

type employeeResponse struct {
	Insight matching.Insight            `json:"insight"`
	Groups  []matching.GroupMatchRecord `json:"groups"`
	Rows    []matching.Row              `json:"rows"`
}

type summaryResponse struct {
	Summary    matching.Summary           `json:"summary"`
	Benchmarks []matching.GroupComparison `json:"benchmark_comparison"`
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ids := append(append([]string(nil), req.BenchmarkIDs...), benchmark.ParseIDs(req.Benchmarks)...)
	ids = benchmark.Dedupe(ids)
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "at least one benchmark employee id is required")
		return
	}

	// A missing weights field means the service defaults; {} means unweighted.
	var weights matching.Weights
	if req.Weights != nil {
		weights = matching.Weights(req.Weights)
	}

	run, table, err := h.runs.Execute(r.Context(), runs.Request{
		RoleName:     req.RoleName,
		LevelName:    req.LevelName,
		Purpose:      req.Purpose,
		BenchmarkIDs: ids,
		Weights:      weights,
	})
	if err != nil {
		resp := map[string]string{"error": err.Error()}
		if run != nil {
			resp["run_id"] = run.ID
		}
		writeJSON(w, statusFor(err), resp)
		return
	}

	h.cache.Put(run.ID, table)
	writeJSON(w, http.StatusCreated, matchResponse{
		Run:     run,
		Summary: matching.Summarize(table, h.threshold),
		Ranking: table.Ranking,
	})
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxListLimit)
	}

	list, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if list == nil {
		list = []runs.Run{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.runs.GetRun(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) handleRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.runs.Ranking(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if ranking == nil {
		ranking = []matching.FinalScore{}
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadResult(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadResult(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:    matching.Summarize(table, h.threshold),
		Benchmarks: matching.CompareBenchmark(table),
	})
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadResult(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	employeeID := r.PathValue("employeeID")
	insight, ok := matching.Insights(table, employeeID)
	if !ok {
		writeError(w, http.StatusNotFound, "employee not ranked in this run")
		return
	}
	writeJSON(w, http.StatusOK, employeeResponse{
		Insight: insight,
		Groups:  table.GroupsFor(employeeID),
		Rows:    table.RowsFor(employeeID),
	})
}

// loadResult returns a run's result table, checking the cache first.
func (h *Handler) loadResult(ctx context.Context, runID string) (*matching.ResultTable, error) {
	if table := h.cache.Get(runID); table != nil {
		return table, nil
	}

	table, err := h.runs.LoadResult(ctx, runID)
	if err != nil {
		return nil, err
	}

	h.cache.Put(runID, table)
	return table, nil
}
