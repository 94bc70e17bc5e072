package matching

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/profile"
)

// RunConfig is the immutable input of one matching run (a job vacancy).
type RunConfig struct {
	RunID        string
	RoleName     string
	LevelName    string
	Purpose      string
	BenchmarkIDs []string
	Weights      Weights // nil or empty means unweighted
}

// NewRunConfig creates a run with a fresh ID. Benchmark IDs are trimmed and
// deduplicated, keeping first-seen order.
func NewRunConfig(roleName string, benchmarkIDs []string, weights Weights) RunConfig {
	return RunConfig{
		RunID:        uuid.New().String(),
		RoleName:     strings.TrimSpace(roleName),
		BenchmarkIDs: dedupeIDs(benchmarkIDs),
		Weights:      weights.Clone(),
	}
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Engine runs matching against a catalog.
type Engine struct {
	catalog *catalog.Catalog
	scales  map[string]map[string]int
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithScales replaces the ordinal scales used by ordinal attributes.
func WithScales(scales map[string]map[string]int) Option {
	return func(e *Engine) {
		if len(scales) > 0 {
			e.scales = scales
		}
	}
}

// WithWorkers bounds the number of employees scored concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates an engine. Every catalog attribute must map to a rule.
func NewEngine(cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	e := &Engine{
		catalog: cat,
		scales:  DefaultScales(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, def := range cat.All() {
		if _, err := RuleFor(def, e.scales); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Catalog returns the engine's attribute catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Run fetches benchmark and candidate profiles from src once, up front, and
// computes the result table. It fails as a whole or returns the full table.
func (e *Engine) Run(ctx context.Context, src profile.Source, cfg RunConfig) (*ResultTable, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	ids := dedupeIDs(cfg.BenchmarkIDs)
	if len(ids) == 0 {
		return nil, ErrEmptyBenchmarkSet
	}

	benchmarks, err := src.ResolveEmployees(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve benchmarks: %v", ErrUpstreamUnavailable, err)
	}
	if len(benchmarks) == 0 {
		return nil, ErrEmptyBenchmarkSet
	}

	candidates, err := src.AllEmployeesForRole(ctx, cfg.RoleName)
	if err != nil {
		return nil, fmt.Errorf("%w: employees for role %q: %v", ErrUpstreamUnavailable, cfg.RoleName, err)
	}

	return e.Compute(ctx, cfg, benchmarks, candidates)
}

// Compute runs matching over an in-memory snapshot. Candidates whose position
// does not match the run's role are ignored.
func (e *Engine) Compute(ctx context.Context, cfg RunConfig, benchmarks, candidates []profile.EmployeeProfile) (*ResultTable, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}

	ordered := orderBenchmarks(benchmarks, dedupeIDs(cfg.BenchmarkIDs))
	if len(ordered) == 0 {
		return nil, ErrEmptyBenchmarkSet
	}

	baseline, err := ComputeBaseline(e.catalog, ordered)
	if err != nil {
		return nil, err
	}
	if baseline.Len() == 0 {
		return nil, ErrNoScorableAttributes
	}

	scorer, err := NewScorer(baseline, e.scales)
	if err != nil {
		return nil, err
	}

	eligible := eligibleCandidates(candidates, cfg.RoleName)
	scored := make([]scoredEmployee, len(eligible))
	groups := e.catalog.Groups()
	weights := cfg.Weights.Clone()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := &eligible[i]
			records, err := scorer.Score(p)
			if err != nil {
				return err
			}
			grp, final := Aggregate(p.EmployeeID, records, groups, weights)
			scored[i] = scoredEmployee{profile: p, records: records, groups: grp, final: final}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	benchmarkIDs := make([]string, 0, len(ordered))
	isBenchmark := make(map[string]bool, len(ordered))
	for _, b := range ordered {
		benchmarkIDs = append(benchmarkIDs, b.EmployeeID)
		isBenchmark[b.EmployeeID] = true
	}

	ranking, groupRows, rows := assemble(cfg.RoleName, scored, isBenchmark)
	if ranking == nil {
		ranking = []FinalScore{}
	}
	if groupRows == nil {
		groupRows = []GroupMatchRecord{}
	}
	if rows == nil {
		rows = []Row{}
	}

	return &ResultTable{
		RunID:        cfg.RunID,
		RoleName:     cfg.RoleName,
		LevelName:    cfg.LevelName,
		Purpose:      cfg.Purpose,
		BenchmarkIDs: benchmarkIDs,
		Weights:      weights,
		Baseline:     baseline,
		Ranking:      ranking,
		Groups:       groupRows,
		Rows:         rows,
	}, nil
}

// orderBenchmarks returns profiles in benchmark ID order, one per ID.
func orderBenchmarks(profiles []profile.EmployeeProfile, ids []string) []profile.EmployeeProfile {
	byID := make(map[string]profile.EmployeeProfile, len(profiles))
	for _, p := range profiles {
		if _, ok := byID[p.EmployeeID]; !ok {
			byID[p.EmployeeID] = p
		}
	}
	out := make([]profile.EmployeeProfile, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// eligibleCandidates keeps one profile per employee holding the role.
func eligibleCandidates(profiles []profile.EmployeeProfile, role string) []profile.EmployeeProfile {
	seen := make(map[string]bool, len(profiles))
	out := make([]profile.EmployeeProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.HoldsRole(role) || seen[p.EmployeeID] {
			continue
		}
		seen[p.EmployeeID] = true
		out = append(out, p)
	}
	return out
}
