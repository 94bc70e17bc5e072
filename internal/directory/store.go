// Package directory reads employee profiles from the HR database: employee
// master data, psychometric profiles, yearly competency pillars and PAPI
// scales, pivoted into one attribute map per employee.
package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/talentscope/talentscope/pkg/profile"
)

// Store is a profile.Source backed by Postgres.
type Store struct {
	db *sql.DB
}

var _ profile.Source = (*Store)(nil)

// NewStore creates a new directory Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const employeeSelect = `
	SELECT e.employee_id, e.fullname,
	       COALESCE(pos.name, ''), COALESCE(dir.name, ''), COALESCE(g.name, ''),
	       edu.name, pp.disc, pp.pauli, pp.iq, pp.gtq, pp.tiki
	FROM employees e
	LEFT JOIN dim_directorates dir ON e.directorate_id = dir.directorate_id
	LEFT JOIN dim_grades g ON e.grade_id = g.grade_id
	LEFT JOIN dim_education edu ON e.education_id = edu.education_id
	LEFT JOIN dim_positions pos ON e.position_id = pos.position_id
	LEFT JOIN profiles_psych pp ON e.employee_id = pp.employee_id`

// ResolveEmployees returns the profiles of the given employee IDs. Unknown
// IDs are skipped.
func (s *Store) ResolveEmployees(ctx context.Context, ids []string) ([]profile.EmployeeProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.load(ctx,
		employeeSelect+` WHERE e.employee_id = ANY($1) ORDER BY e.employee_id`,
		pq.Array(ids))
}

// AllEmployeesForRole returns every employee whose position matches the
// role name, ignoring case and surrounding whitespace.
func (s *Store) AllEmployeesForRole(ctx context.Context, roleName string) ([]profile.EmployeeProfile, error) {
	return s.load(ctx,
		employeeSelect+` WHERE LOWER(TRIM(pos.name)) = LOWER(TRIM($1)) ORDER BY e.employee_id`,
		roleName)
}

// Positions lists the position names known to the directory.
func (s *Store) Positions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM dim_positions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Store) load(ctx context.Context, query string, arg any) ([]profile.EmployeeProfile, error) {
	base, err := s.queryEmployees(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	if len(base) == 0 {
		return nil, nil
	}

	ids := make([]string, len(base))
	for i, b := range base {
		ids[i] = b.ID
	}

	// Competencies come from the latest assessment year across the table.
	comps, err := s.queryScores(ctx,
		`SELECT employee_id, pillar_code, score FROM competencies_yearly
		 WHERE year = (SELECT MAX(year) FROM competencies_yearly)
		   AND employee_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load competencies: %w", err)
	}

	papi, err := s.queryScores(ctx,
		`SELECT employee_id, scale_code, score FROM papi_scores WHERE employee_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load papi scores: %w", err)
	}

	return pivot(base, comps, papi), nil
}

func (s *Store) queryEmployees(ctx context.Context, query string, arg any) ([]employeeRow, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var out []employeeRow
	for rows.Next() {
		var r employeeRow
		if err := rows.Scan(&r.ID, &r.FullName, &r.Position, &r.Directorate, &r.Grade,
			&r.Education, &r.DISC, &r.Pauli, &r.IQ, &r.GTQ, &r.TIKI); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) queryScores(ctx context.Context, query string, ids []string) ([]scoreRow, error) {
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scoreRow
	for rows.Next() {
		var r scoreRow
		if err := rows.Scan(&r.EmployeeID, &r.Code, &r.Score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
