package catalog

// Competency group names used by the default catalog.
const (
	GroupExecution  = "Execution Excellence"
	GroupStrategic  = "Strategic Impact"
	GroupInnovation = "Growth & Innovation"
	GroupLeadership = "People Leadership"
	GroupMotivation = "Motivation & Drive"
	GroupCognitive  = "Cognitive Complexity"
	GroupDemography = "Demographics"
	GroupPAPI       = "PAPI Alignment"
)

func numeric(order int, group, name, key string) AttributeDefinition {
	return AttributeDefinition{
		Order:     order,
		Group:     group,
		Name:      name,
		SourceKey: key,
		DataType:  Numeric,
		Direction: HigherIsBetter,
	}
}

// DefaultDefinitions returns the standard talent variable set.
func DefaultDefinitions() []AttributeDefinition {
	return []AttributeDefinition{
		numeric(1, GroupExecution, "Quality Delivery", "Quality_Delivery"),
		numeric(2, GroupExecution, "Forward Thinking", "Forward_Thinking"),
		numeric(3, GroupExecution, "Team Orientation", "Team_Orientation"),
		numeric(4, GroupStrategic, "Commercial Savvy", "Commercial_Savvy"),
		numeric(5, GroupStrategic, "Value Creation", "Value_Creation"),
		numeric(6, GroupInnovation, "Growth Drive", "Growth_Drive"),
		numeric(7, GroupInnovation, "Curiosity", "Curiosity"),
		numeric(8, GroupLeadership, "Lead & Inspire", "Lead_Inspire"),
		numeric(9, GroupLeadership, "Social Empathy", "Social_Empathy"),
		numeric(10, GroupMotivation, "Pauli Score", "Pauli_Score"),
		numeric(11, GroupCognitive, "IQ Score", "IQ_Score"),
		numeric(12, GroupCognitive, "GTQ Score", "GTQ_Score"),
		numeric(13, GroupCognitive, "TIKI Score", "TIKI_Score"),
		{
			Order:     14,
			Group:     GroupDemography,
			Name:      "Education Level",
			SourceKey: "education",
			DataType:  Categorical,
			Direction: ExactMatch,
			Scale:     ScaleEducation,
		},
		{
			Order:     15,
			Group:     GroupDemography,
			Name:      "DISC Profile",
			SourceKey: "disc",
			DataType:  Categorical,
			Direction: ExactMatch,
		},
		numeric(16, GroupPAPI, "Papi_P", "Papi_P"),
		numeric(17, GroupPAPI, "Papi_W", "Papi_W"),
	}
}

// Default returns the standard catalog.
func Default() *Catalog {
	c, err := New(DefaultDefinitions())
	if err != nil {
		panic("catalog: invalid default definitions: " + err.Error())
	}
	return c
}
