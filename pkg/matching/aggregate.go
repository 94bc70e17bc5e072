package matching

// Aggregate rolls one employee's attribute records up into group rates and a
// final rate. groups fixes the summation order. A group without any scored
// attribute is absent. final is nil when the employee has no group rate.
func Aggregate(employeeID string, records []MatchRecord, groups []string, weights Weights) (out []GroupMatchRecord, final *float64) {
	type acc struct {
		sum   float64
		count int
	}
	byGroup := make(map[string]*acc, len(groups))
	for _, rec := range records {
		if rec.Rate == nil {
			continue
		}
		a, ok := byGroup[rec.GroupName]
		if !ok {
			a = &acc{}
			byGroup[rec.GroupName] = a
		}
		a.sum += *rec.Rate
		a.count++
	}

	for _, g := range groups {
		a, ok := byGroup[g]
		if !ok || a.count == 0 {
			continue
		}
		out = append(out, GroupMatchRecord{
			EmployeeID:     employeeID,
			GroupName:      g,
			GroupMatchRate: round2(a.sum / float64(a.count)),
		})
	}

	if len(out) == 0 {
		return nil, nil
	}
	rate := FinalRate(out, weights)
	return out, &rate
}

// FinalRate combines group rates. Groups with a declared weight form a
// weighted mean; groups without one are dropped from it. When no present
// group is weighted, or the declared weights sum to zero, the unweighted
// mean of all group rates is used.
func FinalRate(groups []GroupMatchRecord, weights Weights) float64 {
	var weightedSum, weightTotal float64
	weighted := false
	for _, g := range groups {
		w, ok := weights[g.GroupName]
		if !ok {
			continue
		}
		weighted = true
		weightedSum += g.GroupMatchRate * w
		weightTotal += w
	}
	if weighted && weightTotal > 0 {
		return clampRate(round2(weightedSum / weightTotal))
	}

	var sum float64
	for _, g := range groups {
		sum += g.GroupMatchRate
	}
	return clampRate(round2(sum / float64(len(groups))))
}
