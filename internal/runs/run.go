// Package runs executes matching runs and persists them: run metadata and
// final scores in Postgres, full result tables in blob storage.
package runs

import (
	"context"
	"errors"
	"time"

	"github.com/talentscope/talentscope/pkg/matching"
)

// Run statuses.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

var (
	// ErrRunNotFound is returned for an unknown run ID.
	ErrRunNotFound = errors.New("run not found")
	// ErrRunNotCompleted is returned when a result is requested for a run
	// that has not completed.
	ErrRunNotCompleted = errors.New("run has not completed")
	// ErrRoleRequired is returned when a request names no role.
	ErrRoleRequired = errors.New("role name is required")
)

// Run is the persisted record of one matching run (a job vacancy).
type Run struct {
	ID             string           `json:"id"`
	RoleName       string           `json:"role_name"`
	LevelName      string           `json:"job_level,omitempty"`
	Purpose        string           `json:"role_purpose,omitempty"`
	BenchmarkIDs   []string         `json:"benchmark_ids"`
	Weights        matching.Weights `json:"weights,omitempty"`
	Status         string           `json:"status"`
	Error          string           `json:"error,omitempty"`
	CandidateCount int              `json:"candidate_count"`
	TopMatchRate   *float64         `json:"top_match_rate,omitempty"`
	ResultKey      string           `json:"result_key,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

// Repository stores run records.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	UpdateStatus(ctx context.Context, id, status, errMsg string) error
	Complete(ctx context.Context, id, resultKey string, ranking []matching.FinalScore) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit int) ([]Run, error)
	Scores(ctx context.Context, id string) ([]matching.FinalScore, error)
}
