package matching

import (
	"fmt"
	"sort"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/profile"
)

// ComputeBaseline derives the baseline profile from benchmark employees.
// Numeric attributes use the median of non-null values; categorical
// attributes use the mode, ties going to the value seen first in benchmark
// order. Attributes with no non-null benchmark value are left out.
func ComputeBaseline(cat *catalog.Catalog, benchmarks []profile.EmployeeProfile) (BaselineProfile, error) {
	var bp BaselineProfile

	for _, def := range cat.All() {
		var values []profile.Value
		for i := range benchmarks {
			if v := benchmarks[i].Value(def.SourceKey); !v.IsNull() {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		var baseline profile.Value
		switch def.DataType {
		case catalog.Numeric:
			nums := make([]float64, 0, len(values))
			for j, v := range values {
				f, err := v.Float()
				if err != nil {
					return BaselineProfile{}, fmt.Errorf("%w: benchmark value %d of %q: %v", ErrUpstreamUnavailable, j, def.Name, err)
				}
				nums = append(nums, f)
			}
			baseline = profile.Number(Median(nums))
		default:
			baseline = Mode(values)
		}

		bp.Entries = append(bp.Entries, BaselineEntry{
			Attribute:  def,
			Value:      baseline,
			SampleSize: len(values),
		})
	}

	return bp, nil
}

// Median returns the standard median of xs: the middle value for odd counts,
// the mean of the two middle values for even counts. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Mode returns the most frequent non-null value. Ties resolve to the value
// encountered first.
func Mode(values []profile.Value) profile.Value {
	counts := make(map[string]int)
	var order []profile.Value
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		key := v.String()
		if counts[key] == 0 {
			order = append(order, v)
		}
		counts[key]++
	}

	best := profile.Null()
	bestCount := 0
	for _, v := range order {
		if c := counts[v.String()]; c > bestCount {
			best = v
			bestCount = c
		}
	}
	return best
}
