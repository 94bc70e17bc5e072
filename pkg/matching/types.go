// Package matching implements the talent matching engine. It derives a
// baseline from benchmark employees, scores every eligible employee against
// it per attribute, and rolls attribute rates up into competency-group and
// final match rates.
package matching

import (
	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/profile"
)

// BaselineEntry is the reference value of one attribute.
type BaselineEntry struct {
	Attribute  catalog.AttributeDefinition `json:"attribute"`
	Value      profile.Value               `json:"value"`
	SampleSize int                         `json:"sample_size"` // non-null benchmark values used
}

// BaselineProfile holds one entry per attribute that at least one benchmark
// employee has a value for, in catalog order.
type BaselineProfile struct {
	Entries []BaselineEntry `json:"entries"`
}

// Lookup returns the baseline entry for an attribute name.
func (b *BaselineProfile) Lookup(name string) (BaselineEntry, bool) {
	for _, e := range b.Entries {
		if e.Attribute.Name == name {
			return e, true
		}
	}
	return BaselineEntry{}, false
}

// Len returns the number of attributes with a baseline.
func (b *BaselineProfile) Len() int { return len(b.Entries) }

// MatchRecord is one employee's result for one attribute.
// Rate is nil when the attribute could not be scored for this employee.
type MatchRecord struct {
	EmployeeID     string        `json:"employee_id"`
	AttributeName  string        `json:"attribute_name"`
	GroupName      string        `json:"group_name"`
	BaselineValue  profile.Value `json:"baseline_value"`
	CandidateValue profile.Value `json:"candidate_value"`
	Rate           *float64      `json:"attribute_match_rate"`
	Rule           RuleKind      `json:"rule"`
}

// GroupMatchRecord is one employee's rate for one competency group.
type GroupMatchRecord struct {
	EmployeeID     string  `json:"employee_id"`
	GroupName      string  `json:"group_name"`
	GroupMatchRate float64 `json:"group_match_rate"`
}

// FinalScore is one employee's overall match rate and ranking position.
type FinalScore struct {
	EmployeeID     string  `json:"employee_id"`
	Directorate    string  `json:"directorate"`
	Grade          string  `json:"grade"`
	FinalMatchRate float64 `json:"final_match_rate"`
	Rank           int     `json:"rank"` // 1-based
	IsBenchmark    bool    `json:"is_benchmark"`
}

// Row is one line of the assembled result table: one scored attribute of one
// employee, carrying the group and final rates alongside.
type Row struct {
	EmployeeID         string        `json:"employee_id"`
	Directorate        string        `json:"directorate"`
	Role               string        `json:"role"`
	Grade              string        `json:"grade"`
	GroupName          string        `json:"group_name"`
	AttributeName      string        `json:"attribute_name"`
	BaselineValue      profile.Value `json:"baseline_value"`
	CandidateValue     profile.Value `json:"candidate_value"`
	AttributeMatchRate float64       `json:"attribute_match_rate"`
	GroupMatchRate     float64       `json:"group_match_rate"`
	FinalMatchRate     float64       `json:"final_match_rate"`
}

// ResultTable is the complete, immutable output of one matching run.
type ResultTable struct {
	RunID        string             `json:"run_id"`
	RoleName     string             `json:"role_name"`
	LevelName    string             `json:"job_level,omitempty"`
	Purpose      string             `json:"role_purpose,omitempty"`
	BenchmarkIDs []string           `json:"benchmark_ids"` // resolved benchmark employees
	Weights      Weights            `json:"weights,omitempty"`
	Baseline     BaselineProfile    `json:"baseline"`
	Ranking      []FinalScore       `json:"ranking"`
	Groups       []GroupMatchRecord `json:"groups"`
	Rows         []Row              `json:"rows"`
}

// FinalScore returns the final score of an employee, if ranked.
func (t *ResultTable) FinalScore(employeeID string) (FinalScore, bool) {
	for _, fs := range t.Ranking {
		if fs.EmployeeID == employeeID {
			return fs, true
		}
	}
	return FinalScore{}, false
}

// Rank returns the 1-based rank of an employee, or 0 when unranked.
func (t *ResultTable) Rank(employeeID string) int {
	fs, _ := t.FinalScore(employeeID)
	return fs.Rank
}

// RowsFor returns the rows of an employee in table order.
func (t *ResultTable) RowsFor(employeeID string) []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}

// GroupsFor returns an employee's group rates in catalog group order.
func (t *ResultTable) GroupsFor(employeeID string) []GroupMatchRecord {
	var out []GroupMatchRecord
	for _, g := range t.Groups {
		if g.EmployeeID == employeeID {
			out = append(out, g)
		}
	}
	return out
}

// Empty reports whether no employee was ranked.
func (t *ResultTable) Empty() bool { return len(t.Ranking) == 0 }
