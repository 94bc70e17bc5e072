package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentscope/talentscope/internal/runs"
	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/matching"
	"github.com/talentscope/talentscope/pkg/profile"
)

func analyst(id string, iq float64, disc string) profile.EmployeeProfile {
	return profile.EmployeeProfile{
		EmployeeID:  id,
		Position:    "Data Analyst",
		Directorate: "Commercial",
		Grade:       "IV",
		Attributes: map[string]profile.Value{
			"IQ_Score": profile.Number(iq),
			"disc":     profile.Text(disc),
		},
	}
}

func newTestServer(t *testing.T, apiKey string) http.Handler {
	t.Helper()
	engine, err := matching.NewEngine(catalog.Default())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	store := profile.NewMemoryStore(
		analyst("E1", 100, "D"),
		analyst("E2", 120, "D"),
		analyst("E3", 99, "I"),
		analyst("E4", 150, "D"),
	)
	svc := runs.NewService(runs.NewMemoryRepository(), runs.NewLocalStorage(t.TempDir()), engine, store, matching.DefaultWeights(), nil)

	mux := http.NewServeMux()
	NewHandler(svc, NewResultCache(4, nil), matching.DefaultQualifiedThreshold).RegisterRoutes(mux)
	return APIKeyAuth(apiKey)(mux)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func startRun(t *testing.T, h http.Handler) matchResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/match", map[string]any{
		"role_name":     "data analyst",
		"job_level":     "Senior",
		"benchmark_ids": []string{"E1", "E2"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/v1/match = %d: %s", rec.Code, rec.Body.String())
	}
	var resp matchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestMatchAndReadBack(t *testing.T) {
	h := newTestServer(t, "")
	resp := startRun(t, h)

	if resp.Run == nil || resp.Run.Status != runs.StatusCompleted {
		t.Fatalf("unexpected run %+v", resp.Run)
	}
	if len(resp.Ranking) != 4 || resp.Ranking[0].EmployeeID != "E2" {
		t.Fatalf("unexpected ranking %+v", resp.Ranking)
	}
	if resp.Summary.TotalCandidates != 4 || resp.Summary.TopMatchRate != 100 {
		t.Errorf("unexpected summary %+v", resp.Summary)
	}
	id := resp.Run.ID

	t.Run("run", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/runs/"+id, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var run runs.Run
		if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
			t.Fatal(err)
		}
		if run.CandidateCount != 4 || run.LevelName != "Senior" {
			t.Errorf("unexpected run %+v", run)
		}
	})

	t.Run("ranking", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/runs/"+id+"/ranking", nil)
		var ranking []matching.FinalScore
		if err := json.Unmarshal(rec.Body.Bytes(), &ranking); err != nil {
			t.Fatal(err)
		}
		if len(ranking) != 4 || ranking[3].EmployeeID != "E3" {
			t.Errorf("unexpected ranking %+v", ranking)
		}
	})

	t.Run("result", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/runs/"+id+"/result", nil)
		var table matching.ResultTable
		if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
			t.Fatal(err)
		}
		if table.RunID != id || len(table.Rows) == 0 {
			t.Errorf("unexpected table: run %s, %d rows", table.RunID, len(table.Rows))
		}
	})

	t.Run("summary", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/runs/"+id+"/summary", nil)
		var s summaryResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatal(err)
		}
		if s.Summary.TotalCandidates != 4 || len(s.Benchmarks) == 0 {
			t.Errorf("unexpected summary %+v", s)
		}
	})

	t.Run("employee", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/runs/"+id+"/employees/E3", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var e employeeResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.Insight.Rank != 4 || len(e.Insight.DevelopmentAreas) != 1 {
			t.Errorf("unexpected insight %+v", e.Insight)
		}

		rec = do(t, h, http.MethodGet, "/api/runs/"+id+"/employees/NOPE", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("unknown employee status = %d", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/runs?limit=10", nil)
		var list []runs.Run
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatal(err)
		}
		if len(list) != 1 || list[0].ID != id {
			t.Errorf("unexpected list %+v", list)
		}
	})
}

func TestMatchFreeTextBenchmarks(t *testing.T) {
	h := newTestServer(t, "")
	rec := do(t, h, http.MethodPost, "/api/v1/match", map[string]any{
		"role_name":  "Data Analyst",
		"benchmarks": "E1; E2, E1",
		"weights":    map[string]float64{},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp matchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if got := resp.Run.BenchmarkIDs; len(got) != 2 || got[0] != "E1" || got[1] != "E2" {
		t.Errorf("benchmark ids = %v", got)
	}
	if len(resp.Run.Weights) != 0 {
		t.Errorf("expected an unweighted run, got %v", resp.Run.Weights)
	}
}

func TestMatchErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      any
		want      int
		wantRunID bool
	}{
		{
			name: "no benchmarks",
			body: map[string]any{"role_name": "Data Analyst"},
			want: http.StatusBadRequest,
		},
		{
			name: "missing role",
			body: map[string]any{"benchmark_ids": []string{"E1"}},
			want: http.StatusBadRequest,
		},
		{
			name:      "unknown benchmarks",
			body:      map[string]any{"role_name": "Data Analyst", "benchmark_ids": []string{"X9"}},
			want:      http.StatusUnprocessableEntity,
			wantRunID: true,
		},
		{
			name: "negative weight",
			body: map[string]any{
				"role_name":     "Data Analyst",
				"benchmark_ids": []string{"E1"},
				"weights":       map[string]float64{catalog.GroupCognitive: -1},
			},
			want:      http.StatusBadRequest,
			wantRunID: true,
		},
		{
			name: "malformed body",
			body: "not an object",
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(t, "")
			rec := do(t, h, http.MethodPost, "/api/v1/match", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp["error"] == "" {
				t.Error("expected an error message")
			}
			if _, ok := resp["run_id"]; ok != tc.wantRunID {
				t.Errorf("run_id present = %v, want %v", ok, tc.wantRunID)
			}
		})
	}
}

func TestFailedRunIsNotReadable(t *testing.T) {
	h := newTestServer(t, "")
	rec := do(t, h, http.MethodPost, "/api/v1/match", map[string]any{
		"role_name": "Data Analyst", "benchmark_ids": []string{"X9"},
	})
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/ranking", "/result", "/summary"} {
		rec := do(t, h, http.MethodGet, "/api/runs/"+resp["run_id"]+path, nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("GET %s = %d, want 409", path, rec.Code)
		}
	}
}

func TestRunNotFound(t *testing.T) {
	h := newTestServer(t, "")
	for _, path := range []string{"/api/runs/missing", "/api/runs/missing/ranking", "/api/runs/missing/result"} {
		if rec := do(t, h, http.MethodGet, path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestListRunsInvalidLimit(t *testing.T) {
	h := newTestServer(t, "")
	if rec := do(t, h, http.MethodGet, "/api/runs?limit=zero", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	h := newTestServer(t, "secret")

	body := map[string]any{"role_name": "Data Analyst", "benchmark_ids": []string{"E1"}}
	if rec := do(t, h, http.MethodPost, "/api/v1/match", body); rec.Code != http.StatusUnauthorized {
		t.Errorf("POST without key = %d, want 401", rec.Code)
	}

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", &buf)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("POST with key = %d, want 201", rec.Code)
	}

	if rec := do(t, h, http.MethodGet, "/api/runs", nil); rec.Code != http.StatusOK {
		t.Errorf("GET without key = %d, want 200", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached the handler")
	}))
	rec := do(t, h, http.MethodOptions, "/api/v1/match", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-API-Key" {
		t.Errorf("allow headers = %q", got)
	}
}
