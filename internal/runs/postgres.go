package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/talentscope/talentscope/pkg/matching"
)

// PostgresRepository stores runs in the match_runs and match_run_scores
// tables.
type PostgresRepository struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const runColumns = `id, role_name, job_level, role_purpose, benchmark_ids, weights, status,
	error_message, candidate_count, top_match_rate, result_key, created_at, completed_at`

func (r *PostgresRepository) Create(ctx context.Context, run *Run) error {
	weights, err := marshalWeights(run.Weights)
	if err != nil {
		return err
	}
	status := run.Status
	if status == "" {
		status = StatusQueued
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO match_runs (id, role_name, job_level, role_purpose, benchmark_ids, weights, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING status, created_at`,
		run.ID, run.RoleName, run.LevelName, run.Purpose, pq.Array(run.BenchmarkIDs), weights, status,
	).Scan(&run.Status, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE match_runs
		 SET status = $1, error_message = $2,
		     completed_at = CASE WHEN $1 = 'FAILED' THEN now() ELSE completed_at END
		 WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return expectOne(res, id)
}

func (r *PostgresRepository) Complete(ctx context.Context, id, resultKey string, ranking []matching.FinalScore) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("match_run_scores",
		"run_id", "employee_id", "directorate", "grade", "final_match_rate", "rank", "is_benchmark"))
	if err != nil {
		return fmt.Errorf("prepare score copy: %w", err)
	}
	for _, fs := range ranking {
		if _, err := stmt.ExecContext(ctx, id, fs.EmployeeID, fs.Directorate, fs.Grade,
			fs.FinalMatchRate, fs.Rank, fs.IsBenchmark); err != nil {
			stmt.Close()
			return fmt.Errorf("copy score %s: %w", fs.EmployeeID, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush score copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close score copy: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE match_runs
		 SET status = $1, error_message = '', result_key = $2, candidate_count = $3,
		     top_match_rate = $4, completed_at = now()
		 WHERE id = $5`,
		StatusCompleted, resultKey, len(ranking), topRate(ranking), id,
	)
	if err != nil {
		return fmt.Errorf("finalize run: %w", err)
	}
	if err := expectOne(res, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM match_runs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM match_runs ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Scores(ctx context.Context, id string) ([]matching.FinalScore, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT employee_id, directorate, grade, final_match_rate, rank, is_benchmark
		 FROM match_run_scores WHERE run_id = $1 ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var out []matching.FinalScore
	for rows.Next() {
		var fs matching.FinalScore
		if err := rows.Scan(&fs.EmployeeID, &fs.Directorate, &fs.Grade, &fs.FinalMatchRate, &fs.Rank, &fs.IsBenchmark); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run     Run
		weights []byte
		top     sql.NullFloat64
		done    pq.NullTime
	)
	if err := row.Scan(&run.ID, &run.RoleName, &run.LevelName, &run.Purpose,
		pq.Array(&run.BenchmarkIDs), &weights, &run.Status, &run.Error,
		&run.CandidateCount, &top, &run.ResultKey, &run.CreatedAt, &done); err != nil {
		return nil, err
	}
	if len(weights) > 0 {
		if err := json.Unmarshal(weights, &run.Weights); err != nil {
			return nil, fmt.Errorf("decode weights: %w", err)
		}
	}
	if top.Valid {
		run.TopMatchRate = &top.Float64
	}
	if done.Valid {
		run.CompletedAt = &done.Time
	}
	return &run, nil
}

// marshalWeights returns the JSONB parameter for w, nil for SQL NULL.
func marshalWeights(w matching.Weights) (any, error) {
	if w == nil {
		return nil, nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode weights: %w", err)
	}
	return string(data), nil
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	return nil
}
