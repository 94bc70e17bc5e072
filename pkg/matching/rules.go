package matching

import (
	"fmt"
	"math"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/profile"
)

// RuleKind identifies a scoring strategy.
type RuleKind string

const (
	RuleNumericHigherIsBetter RuleKind = "numeric_higher_is_better"
	RuleCategoricalExact      RuleKind = "categorical_exact_match"
	RuleCategoricalOrdinal    RuleKind = "categorical_ordinal"
)

const maxRate = 100.0

// Rule scores a candidate value against a baseline value.
type Rule interface {
	// Kind returns the strategy identifier.
	Kind() RuleKind
	// Rate returns the match rate in [0, 100]. scored is false when the
	// pair cannot be scored; such results are excluded from aggregation.
	Rate(baseline, candidate profile.Value) (rate float64, scored bool, err error)
}

// RatioRule credits a candidate in proportion to the baseline, capped at 100.
type RatioRule struct{}

func (RatioRule) Kind() RuleKind { return RuleNumericHigherIsBetter }

func (RatioRule) Rate(baseline, candidate profile.Value) (float64, bool, error) {
	if baseline.IsNull() || candidate.IsNull() {
		return 0, false, nil
	}
	b, err := baseline.Float()
	if err != nil {
		return 0, false, fmt.Errorf("baseline: %w", err)
	}
	// A zero baseline would divide by zero; a negative one has no meaningful ratio.
	if b <= 0 {
		return 0, false, nil
	}
	c, err := candidate.Float()
	if err != nil {
		return 0, false, fmt.Errorf("candidate: %w", err)
	}
	return clampRate(c / b * 100), true, nil
}

// ExactMatchRule gives 100 for an identical value and 0 otherwise.
type ExactMatchRule struct{}

func (ExactMatchRule) Kind() RuleKind { return RuleCategoricalExact }

func (ExactMatchRule) Rate(baseline, candidate profile.Value) (float64, bool, error) {
	if baseline.IsNull() || candidate.IsNull() {
		return 0, false, nil
	}
	if candidate.Equal(baseline) {
		return maxRate, true, nil
	}
	return 0, true, nil
}

// OrdinalRule gives 100 when the candidate's rank meets or exceeds the
// baseline's rank on a named scale, and 0 otherwise. Codes missing from the
// scale rank 0.
type OrdinalRule struct {
	Scale string
	Ranks map[string]int
}

func (OrdinalRule) Kind() RuleKind { return RuleCategoricalOrdinal }

// Rank returns the rank of a code, 0 when unknown.
func (r OrdinalRule) Rank(v profile.Value) int {
	return r.Ranks[v.String()]
}

func (r OrdinalRule) Rate(baseline, candidate profile.Value) (float64, bool, error) {
	if baseline.IsNull() || candidate.IsNull() {
		return 0, false, nil
	}
	if r.Rank(candidate) >= r.Rank(baseline) {
		return maxRate, true, nil
	}
	return 0, true, nil
}

// RuleFor selects the scoring strategy for an attribute. scales maps scale
// names to code ranks.
func RuleFor(def catalog.AttributeDefinition, scales map[string]map[string]int) (Rule, error) {
	switch {
	case def.DataType == catalog.Categorical && def.Scale != "":
		ranks, ok := scales[def.Scale]
		if !ok {
			return nil, fmt.Errorf("%w: attribute %q uses unknown scale %q", ErrInvalidCatalog, def.Name, def.Scale)
		}
		return OrdinalRule{Scale: def.Scale, Ranks: ranks}, nil
	case def.DataType == catalog.Categorical:
		return ExactMatchRule{}, nil
	case def.DataType == catalog.Numeric && def.Direction == catalog.HigherIsBetter:
		return RatioRule{}, nil
	default:
		return nil, fmt.Errorf("%w: attribute %q has unsupported rule %s/%s", ErrInvalidCatalog, def.Name, def.DataType, def.Direction)
	}
}

func clampRate(r float64) float64 {
	return math.Max(0, math.Min(r, maxRate))
}

// round2 rounds half away from zero to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
