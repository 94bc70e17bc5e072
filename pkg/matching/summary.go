package matching

import "sort"

// Fit thresholds on the final match rate.
const (
	DefaultQualifiedThreshold = 70.0

	highFitThreshold     = 80.0
	goodFitThreshold     = 70.0
	moderateFitThreshold = 60.0

	strengthThreshold    = 80.0
	developmentThreshold = 50.0
	weakGroupThreshold   = 70.0
)

// FitLevel classifies a final match rate.
type FitLevel string

const (
	FitExcellent FitLevel = "EXCELLENT"
	FitGood      FitLevel = "GOOD"
	FitModerate  FitLevel = "MODERATE"
	FitBelow     FitLevel = "BELOW_THRESHOLD"
)

// FitFor maps a final match rate to a fit level.
func FitFor(rate float64) FitLevel {
	switch {
	case rate >= highFitThreshold:
		return FitExcellent
	case rate >= goodFitThreshold:
		return FitGood
	case rate >= moderateFitThreshold:
		return FitModerate
	default:
		return FitBelow
	}
}

// Summary describes the ranked talent pool of one run.
type Summary struct {
	TotalCandidates   int     `json:"total_candidates"`
	AverageMatchRate  float64 `json:"average_match_rate"`
	TopMatchRate      float64 `json:"top_match_rate"`
	Qualified         int     `json:"qualified"`
	HighFit           int     `json:"high_fit"`           // >= 80
	ModerateFit       int     `json:"moderate_fit"`       // 60..80
	DevelopmentNeeded int     `json:"development_needed"` // < 60
}

// Summarize computes pool-level statistics. threshold <= 0 uses
// DefaultQualifiedThreshold.
func Summarize(t *ResultTable, threshold float64) Summary {
	if threshold <= 0 {
		threshold = DefaultQualifiedThreshold
	}
	s := Summary{TotalCandidates: len(t.Ranking)}
	if s.TotalCandidates == 0 {
		return s
	}

	var sum float64
	for i, fs := range t.Ranking {
		r := fs.FinalMatchRate
		sum += r
		if i == 0 || r > s.TopMatchRate {
			s.TopMatchRate = r
		}
		if r >= threshold {
			s.Qualified++
		}
		switch {
		case r >= highFitThreshold:
			s.HighFit++
		case r >= moderateFitThreshold:
			s.ModerateFit++
		default:
			s.DevelopmentNeeded++
		}
	}
	s.AverageMatchRate = round2(sum / float64(s.TotalCandidates))
	return s
}

// Gap is a scored attribute with its distance from full match.
type Gap struct {
	Row
	Gap float64 `json:"gap"`
}

// Insight explains one employee's position in the ranking.
type Insight struct {
	EmployeeID       string             `json:"employee_id"`
	Rank             int                `json:"rank"`
	FinalMatchRate   float64            `json:"final_match_rate"`
	Fit              FitLevel           `json:"fit"`
	TopGroups        []GroupMatchRecord `json:"top_groups"`
	Strengths        []Gap              `json:"strengths"`
	DevelopmentAreas []Gap              `json:"development_areas"`
	WeakGroups       []string           `json:"weak_groups"`
}

// Insights builds the insight for an employee, if ranked.
func Insights(t *ResultTable, employeeID string) (Insight, bool) {
	fs, ok := t.FinalScore(employeeID)
	if !ok {
		return Insight{}, false
	}
	in := Insight{
		EmployeeID:     employeeID,
		Rank:           fs.Rank,
		FinalMatchRate: fs.FinalMatchRate,
		Fit:            FitFor(fs.FinalMatchRate),
	}

	groups := t.GroupsFor(employeeID)
	for _, g := range groups {
		if g.GroupMatchRate < weakGroupThreshold {
			in.WeakGroups = append(in.WeakGroups, g.GroupName)
		}
	}
	top := make([]GroupMatchRecord, len(groups))
	copy(top, groups)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].GroupMatchRate > top[j].GroupMatchRate
	})
	if len(top) > 2 {
		top = top[:2]
	}
	in.TopGroups = top

	for _, r := range t.RowsFor(employeeID) {
		g := Gap{Row: r, Gap: round2(maxRate - r.AttributeMatchRate)}
		switch {
		case r.AttributeMatchRate >= strengthThreshold:
			in.Strengths = append(in.Strengths, g)
		case r.AttributeMatchRate < developmentThreshold:
			in.DevelopmentAreas = append(in.DevelopmentAreas, g)
		}
	}
	sort.SliceStable(in.Strengths, func(i, j int) bool {
		return in.Strengths[i].AttributeMatchRate > in.Strengths[j].AttributeMatchRate
	})
	sort.SliceStable(in.DevelopmentAreas, func(i, j int) bool {
		return in.DevelopmentAreas[i].AttributeMatchRate < in.DevelopmentAreas[j].AttributeMatchRate
	})

	return in, true
}

// GroupComparison contrasts benchmark employees with the rest of the pool
// on one competency group. Averages are over employees that have the group.
type GroupComparison struct {
	GroupName        string  `json:"group_name"`
	BenchmarkAverage float64 `json:"benchmark_average"`
	PoolAverage      float64 `json:"pool_average"`
	Gap              float64 `json:"gap"`
	BenchmarkCount   int     `json:"benchmark_count"`
	PoolCount        int     `json:"pool_count"`
}

// CompareBenchmark averages group rates for ranked benchmark employees and
// for everyone else, in the order groups first appear in the table.
func CompareBenchmark(t *ResultTable) []GroupComparison {
	isBenchmark := make(map[string]bool, len(t.BenchmarkIDs))
	for _, id := range t.BenchmarkIDs {
		isBenchmark[id] = true
	}

	type acc struct {
		bSum, pSum     float64
		bCount, pCount int
	}
	var order []string
	byGroup := make(map[string]*acc)
	for _, g := range t.Groups {
		a, ok := byGroup[g.GroupName]
		if !ok {
			a = &acc{}
			byGroup[g.GroupName] = a
			order = append(order, g.GroupName)
		}
		if isBenchmark[g.EmployeeID] {
			a.bSum += g.GroupMatchRate
			a.bCount++
		} else {
			a.pSum += g.GroupMatchRate
			a.pCount++
		}
	}

	out := make([]GroupComparison, 0, len(order))
	for _, name := range order {
		a := byGroup[name]
		c := GroupComparison{GroupName: name, BenchmarkCount: a.bCount, PoolCount: a.pCount}
		if a.bCount > 0 {
			c.BenchmarkAverage = round2(a.bSum / float64(a.bCount))
		}
		if a.pCount > 0 {
			c.PoolAverage = round2(a.pSum / float64(a.pCount))
		}
		c.Gap = round2(c.BenchmarkAverage - c.PoolAverage)
		out = append(out, c)
	}
	return out
}
