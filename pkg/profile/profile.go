// Package profile holds the employee profile model read by the matching
// engine, and the data-access contract used to fetch profiles.
package profile

import (
	"context"
	"strings"
)

// EmployeeProfile is one employee's descriptive fields plus the resolved
// value of each catalog attribute, keyed by source key. A missing key is null.
type EmployeeProfile struct {
	EmployeeID  string           `json:"employee_id"`
	FullName    string           `json:"fullname,omitempty"`
	Position    string           `json:"position"`
	Directorate string           `json:"directorate"`
	Grade       string           `json:"grade"`
	Attributes  map[string]Value `json:"attributes"`
}

// Value returns the attribute value for a source key, or null.
func (p *EmployeeProfile) Value(sourceKey string) Value {
	if p.Attributes == nil {
		return Null()
	}
	return p.Attributes[sourceKey]
}

// HoldsRole reports whether the employee's position equals role, ignoring case.
func (p *EmployeeProfile) HoldsRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Position), strings.TrimSpace(role))
}

// Source provides employee profiles. Implementations fetch from the system
// of record; the matching engine calls each method at most once per run.
type Source interface {
	// ResolveEmployees returns the profiles for the given IDs. Unknown IDs
	// are skipped, not reported as errors.
	ResolveEmployees(ctx context.Context, ids []string) ([]EmployeeProfile, error)
	// AllEmployeesForRole returns every employee whose position matches
	// roleName case-insensitively.
	AllEmployeesForRole(ctx context.Context, roleName string) ([]EmployeeProfile, error)
}
