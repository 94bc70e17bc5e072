package runs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/talentscope/talentscope/pkg/matching"
)

// MemoryRepository is an in-process Repository for development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	runs   map[string]*Run
	scores map[string][]matching.FinalScore
	now    func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		runs:   make(map[string]*Run),
		scores: make(map[string][]matching.FinalScore),
		now:    time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; ok {
		return fmt.Errorf("create run %s: already exists", run.ID)
	}
	cp := *run
	if cp.Status == "" {
		cp.Status = StatusQueued
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = r.now()
	}
	run.Status, run.CreatedAt = cp.Status, cp.CreatedAt
	r.runs[run.ID] = &cp
	return nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return fmt.Errorf("update run %s: %w", id, ErrRunNotFound)
	}
	run.Status = status
	run.Error = errMsg
	if status == StatusFailed {
		t := r.now()
		run.CompletedAt = &t
	}
	return nil
}

func (r *MemoryRepository) Complete(ctx context.Context, id, resultKey string, ranking []matching.FinalScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return fmt.Errorf("complete run %s: %w", id, ErrRunNotFound)
	}
	t := r.now()
	run.Status = StatusCompleted
	run.Error = ""
	run.ResultKey = resultKey
	run.CandidateCount = len(ranking)
	run.TopMatchRate = topRate(ranking)
	run.CompletedAt = &t
	r.scores[id] = append([]matching.FinalScore(nil), ranking...)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	cp := *run
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, limit int) ([]Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, *run)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) Scores(ctx context.Context, id string) ([]matching.FinalScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.runs[id]; !ok {
		return nil, fmt.Errorf("scores of run %s: %w", id, ErrRunNotFound)
	}
	return append([]matching.FinalScore(nil), r.scores[id]...), nil
}

func topRate(ranking []matching.FinalScore) *float64 {
	if len(ranking) == 0 {
		return nil
	}
	top := ranking[0].FinalMatchRate
	return &top
}
