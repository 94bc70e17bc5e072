package matching_test

import (
	"context"
	"errors"

	"github.com/talentscope/talentscope/pkg/profile"
)

func emp(id, position string, attrs map[string]profile.Value) profile.EmployeeProfile {
	return profile.EmployeeProfile{
		EmployeeID:  id,
		Position:    position,
		Directorate: "Commercial",
		Grade:       "IV",
		Attributes:  attrs,
	}
}

func num(f float64) profile.Value { return profile.Number(f) }
func txt(s string) profile.Value  { return profile.Text(s) }

type failingSource struct {
	failResolve bool
}

func (s failingSource) ResolveEmployees(ctx context.Context, ids []string) ([]profile.EmployeeProfile, error) {
	if s.failResolve {
		return nil, errors.New("connection refused")
	}
	return []profile.EmployeeProfile{emp("E1", "Data Analyst", map[string]profile.Value{"IQ_Score": num(100)})}, nil
}

func (s failingSource) AllEmployeesForRole(ctx context.Context, roleName string) ([]profile.EmployeeProfile, error) {
	return nil, errors.New("connection reset")
}
