package matching

import "github.com/talentscope/talentscope/pkg/catalog"

// DefaultWeights returns the standard competency group weights.
// PAPI Alignment carries no weight and is left out of weighted final rates.
func DefaultWeights() Weights {
	return Weights{
		catalog.GroupExecution:  0.3,
		catalog.GroupStrategic:  0.2,
		catalog.GroupInnovation: 0.1,
		catalog.GroupLeadership: 0.1,
		catalog.GroupMotivation: 0.1,
		catalog.GroupCognitive:  0.1,
		catalog.GroupDemography: 0.1,
	}
}

// DefaultScales returns the ordinal scales known to the engine.
func DefaultScales() map[string]map[string]int {
	return map[string]map[string]int{
		catalog.ScaleEducation: {
			"D3": 3,
			"S1": 4,
			"S2": 5,
		},
	}
}
