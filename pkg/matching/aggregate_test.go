package matching_test

import (
	"testing"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/matching"
)

func rate(f float64) *float64 { return &f }

func TestAggregate(t *testing.T) {
	groups := catalog.Default().Groups()
	records := []matching.MatchRecord{
		{AttributeName: "Quality Delivery", GroupName: catalog.GroupExecution, Rate: rate(80)},
		{AttributeName: "Forward Thinking", GroupName: catalog.GroupExecution, Rate: rate(100)},
		{AttributeName: "Team Orientation", GroupName: catalog.GroupExecution, Rate: nil},
		{AttributeName: "Commercial Savvy", GroupName: catalog.GroupStrategic, Rate: rate(50)},
		{AttributeName: "IQ Score", GroupName: catalog.GroupCognitive, Rate: nil},
	}

	out, final := matching.Aggregate("E1", records, groups, matching.DefaultWeights())
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %+v", out)
	}
	if out[0].GroupName != catalog.GroupExecution || out[0].GroupMatchRate != 90 {
		t.Errorf("group 0 = %+v, want Execution 90", out[0])
	}
	if out[1].GroupName != catalog.GroupStrategic || out[1].GroupMatchRate != 50 {
		t.Errorf("group 1 = %+v, want Strategic 50", out[1])
	}
	if final == nil || *final != 74 {
		t.Errorf("final = %v, want 74", final)
	}
}

func TestAggregateNothingScored(t *testing.T) {
	records := []matching.MatchRecord{{GroupName: catalog.GroupCognitive}}
	out, final := matching.Aggregate("E1", records, catalog.Default().Groups(), nil)
	if out != nil || final != nil {
		t.Errorf("expected no groups and no final, got %+v / %v", out, final)
	}
}

func TestFinalRate(t *testing.T) {
	groups := []matching.GroupMatchRecord{
		{GroupName: "A", GroupMatchRate: 80},
		{GroupName: "B", GroupMatchRate: 60},
		{GroupName: "C", GroupMatchRate: 30},
	}

	tests := []struct {
		name    string
		weights matching.Weights
		want    float64
	}{
		{"unweighted", nil, 56.67},
		{"equal weights", matching.Weights{"A": 1, "B": 1, "C": 1}, 56.67},
		{"weighted", matching.Weights{"A": 3, "B": 1}, 75},
		{"unweighted group dropped", matching.Weights{"A": 1}, 80},
		{"zero weights fall back", matching.Weights{"A": 0, "B": 0}, 56.67},
		{"no weighted group present", matching.Weights{"Z": 1}, 56.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matching.FinalRate(groups, tt.weights); got != tt.want {
				t.Errorf("FinalRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := matching.DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if err := (matching.Weights{}).Validate(); err != nil {
		t.Errorf("empty weights invalid: %v", err)
	}
	if err := (matching.Weights{"A": -0.1}).Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}
