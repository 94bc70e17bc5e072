package matching

import (
	"sort"

	"github.com/talentscope/talentscope/pkg/profile"
)

// scoredEmployee is the per-employee output of the scoring stage.
type scoredEmployee struct {
	profile *profile.EmployeeProfile
	records []MatchRecord
	groups  []GroupMatchRecord
	final   *float64
}

// assemble joins attribute, group and final results into the ordered table.
// Records without a rate never become rows; employees without a final rate
// are not ranked.
func assemble(roleName string, scored []scoredEmployee, benchmarks map[string]bool) (ranking []FinalScore, groups []GroupMatchRecord, rows []Row) {
	ranked := make([]scoredEmployee, 0, len(scored))
	for _, se := range scored {
		if se.final != nil {
			ranked = append(ranked, se)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if *ranked[i].final != *ranked[j].final {
			return *ranked[i].final > *ranked[j].final
		}
		return ranked[i].profile.EmployeeID < ranked[j].profile.EmployeeID
	})

	for i, se := range ranked {
		p := se.profile
		final := *se.final
		ranking = append(ranking, FinalScore{
			EmployeeID:     p.EmployeeID,
			Directorate:    p.Directorate,
			Grade:          p.Grade,
			FinalMatchRate: final,
			Rank:           i + 1,
			IsBenchmark:    benchmarks[p.EmployeeID],
		})
		groups = append(groups, se.groups...)

		groupRate := make(map[string]float64, len(se.groups))
		for _, g := range se.groups {
			groupRate[g.GroupName] = g.GroupMatchRate
		}

		var empRows []Row
		for _, rec := range se.records {
			if rec.Rate == nil {
				continue
			}
			empRows = append(empRows, Row{
				EmployeeID:         p.EmployeeID,
				Directorate:        p.Directorate,
				Role:               roleName,
				Grade:              p.Grade,
				GroupName:          rec.GroupName,
				AttributeName:      rec.AttributeName,
				BaselineValue:      rec.BaselineValue,
				CandidateValue:     rec.CandidateValue,
				AttributeMatchRate: round2(*rec.Rate),
				GroupMatchRate:     groupRate[rec.GroupName],
				FinalMatchRate:     final,
			})
		}
		sort.SliceStable(empRows, func(i, j int) bool {
			if empRows[i].GroupName != empRows[j].GroupName {
				return empRows[i].GroupName < empRows[j].GroupName
			}
			return empRows[i].AttributeName < empRows[j].AttributeName
		})
		rows = append(rows, empRows...)
	}

	return ranking, groups, rows
}
