package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentscope/talentscope/pkg/matching"
	"github.com/talentscope/talentscope/pkg/profile"
)

// Request describes a matching run to execute.
type Request struct {
	RoleName     string           `json:"role_name"`
	LevelName    string           `json:"job_level,omitempty"`
	Purpose      string           `json:"role_purpose,omitempty"`
	BenchmarkIDs []string         `json:"benchmark_ids"`
	Weights      matching.Weights `json:"weights,omitempty"` // nil means the service defaults
}

// Recorder observes finished runs.
type Recorder interface {
	ObserveRun(status string, d time.Duration, ranked int, topRate float64)
}

// Service orchestrates the run pipeline: record, compute, store, finalize.
type Service struct {
	repo     Repository
	storage  StorageClient
	engine   *matching.Engine
	source   profile.Source
	weights  matching.Weights
	recorder Recorder
}

// NewService creates a new run Service. defaults are the weights used when
// a request carries none. recorder may be nil.
func NewService(repo Repository, storage StorageClient, engine *matching.Engine, source profile.Source, defaults matching.Weights, recorder Recorder) *Service {
	return &Service{
		repo:     repo,
		storage:  storage,
		engine:   engine,
		source:   source,
		weights:  defaults.Clone(),
		recorder: recorder,
	}
}

// Execute runs matching for req and persists the outcome. A failed run is
// recorded with status FAILED and the engine error is returned unchanged.
func (s *Service) Execute(ctx context.Context, req Request) (run *Run, table *matching.ResultTable, err error) {
	if strings.TrimSpace(req.RoleName) == "" {
		return nil, nil, ErrRoleRequired
	}
	weights := req.Weights
	if weights == nil {
		weights = s.weights
	}

	cfg := matching.NewRunConfig(req.RoleName, req.BenchmarkIDs, weights)
	cfg.LevelName = strings.TrimSpace(req.LevelName)
	cfg.Purpose = strings.TrimSpace(req.Purpose)

	// 1. Record the run
	run = &Run{
		ID:           cfg.RunID,
		RoleName:     cfg.RoleName,
		LevelName:    cfg.LevelName,
		Purpose:      cfg.Purpose,
		BenchmarkIDs: cfg.BenchmarkIDs,
		Weights:      cfg.Weights,
		Status:       StatusQueued,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return nil, nil, fmt.Errorf("create run: %w", err)
	}

	start := time.Now()
	if err := s.repo.UpdateStatus(ctx, run.ID, StatusRunning, ""); err != nil {
		return nil, nil, fmt.Errorf("update status to running: %w", err)
	}
	run.Status = StatusRunning

	// On failure, mark the run as failed
	defer func() {
		if err == nil {
			return
		}
		if updateErr := s.repo.UpdateStatus(context.WithoutCancel(ctx), run.ID, StatusFailed, err.Error()); updateErr != nil {
			log.Printf("failed to update run %s status: %v", run.ID, updateErr)
		}
		run.Status = StatusFailed
		run.Error = err.Error()
		s.observe(StatusFailed, start, nil)
		log.Printf("run %s failed: %v", run.ID, err)
	}()

	// 2. Compute
	table, err = s.engine.Run(ctx, s.source, cfg)
	if err != nil {
		return run, nil, err
	}

	// 3. Store the full table
	data, err := json.Marshal(table)
	if err != nil {
		return run, nil, fmt.Errorf("marshal result: %w", err)
	}
	if err = s.storage.PutResult(ctx, run.ID, data); err != nil {
		return run, nil, fmt.Errorf("store result: %w", err)
	}

	// 4. Finalize
	if err = s.repo.Complete(ctx, run.ID, resultKey(run.ID), table.Ranking); err != nil {
		return run, nil, fmt.Errorf("finalize run: %w", err)
	}

	done, err := s.repo.Get(ctx, run.ID)
	if err != nil {
		return run, nil, err
	}
	s.observe(StatusCompleted, start, table.Ranking)
	log.Printf("run %s completed: role=%q benchmarks=%d ranked=%d", run.ID, run.RoleName, len(table.BenchmarkIDs), len(table.Ranking))
	return done, table, nil
}

func (s *Service) observe(status string, start time.Time, ranking []matching.FinalScore) {
	if s.recorder == nil {
		return
	}
	var top float64
	if len(ranking) > 0 {
		top = ranking[0].FinalMatchRate
	}
	s.recorder.ObserveRun(status, time.Since(start), len(ranking), top)
}

// GetRun returns a run record.
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	return s.repo.Get(ctx, id)
}

// ListRuns returns the most recent runs first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.repo.List(ctx, limit)
}

// Ranking returns the persisted final scores of a completed run.
func (s *Service) Ranking(ctx context.Context, id string) ([]matching.FinalScore, error) {
	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.Status != StatusCompleted {
		return nil, fmt.Errorf("run %s is %s: %w", id, run.Status, ErrRunNotCompleted)
	}
	return s.repo.Scores(ctx, id)
}

// LoadResult reads the full result table of a completed run.
func (s *Service) LoadResult(ctx context.Context, id string) (*matching.ResultTable, error) {
	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.Status != StatusCompleted {
		return nil, fmt.Errorf("run %s is %s: %w", id, run.Status, ErrRunNotCompleted)
	}

	data, err := s.storage.GetResult(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}
	var table matching.ResultTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &table, nil
}
