package matching

import (
	"fmt"

	"github.com/talentscope/talentscope/pkg/profile"
)

// Scorer computes attribute-level match rates against a fixed baseline.
type Scorer struct {
	baseline BaselineProfile
	rules    map[string]Rule // by attribute name
}

// NewScorer prepares a scorer for every attribute in the baseline.
func NewScorer(baseline BaselineProfile, scales map[string]map[string]int) (*Scorer, error) {
	s := &Scorer{
		baseline: baseline,
		rules:    make(map[string]Rule, baseline.Len()),
	}
	for _, e := range baseline.Entries {
		r, err := RuleFor(e.Attribute, scales)
		if err != nil {
			return nil, err
		}
		s.rules[e.Attribute.Name] = r
	}
	return s, nil
}

// Score returns one record per baseline attribute, in catalog order.
// Attributes the employee cannot be scored on carry a nil Rate.
func (s *Scorer) Score(p *profile.EmployeeProfile) ([]MatchRecord, error) {
	records := make([]MatchRecord, 0, s.baseline.Len())
	for _, e := range s.baseline.Entries {
		rule := s.rules[e.Attribute.Name]
		candidate := p.Value(e.Attribute.SourceKey)

		rec := MatchRecord{
			EmployeeID:     p.EmployeeID,
			AttributeName:  e.Attribute.Name,
			GroupName:      e.Attribute.Group,
			BaselineValue:  e.Value,
			CandidateValue: candidate,
			Rule:           rule.Kind(),
		}

		rate, scored, err := rule.Rate(e.Value, candidate)
		if err != nil {
			return nil, fmt.Errorf("%w: employee %s attribute %q: %v", ErrUpstreamUnavailable, p.EmployeeID, e.Attribute.Name, err)
		}
		if scored {
			rec.Rate = &rate
		}
		records = append(records, rec)
	}
	return records, nil
}
