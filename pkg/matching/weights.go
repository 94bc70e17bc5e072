package matching

import (
	"fmt"
	"math"
	"sort"
)

// Weights maps competency group names to non-negative weights. Weights need
// not sum to 1; they are normalized when the final rate is computed.
type Weights map[string]float64

// Validate rejects negative and non-finite weights.
func (w Weights) Validate() error {
	groups := make([]string, 0, len(w))
	for g := range w {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		v := w[g]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: group %q has weight %v", ErrInvalidWeights, g, v)
		}
	}
	return nil
}

// Clone returns a copy of w, or nil for an empty map.
func (w Weights) Clone() Weights {
	if len(w) == 0 {
		return nil
	}
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
