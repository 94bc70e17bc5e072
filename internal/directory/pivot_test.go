package directory

import (
	"database/sql"
	"testing"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/profile"
)

func num(f float64) sql.NullFloat64 { return sql.NullFloat64{Float64: f, Valid: true} }
func str(s string) sql.NullString   { return sql.NullString{String: s, Valid: true} }

func TestPivot(t *testing.T) {
	base := []employeeRow{
		{ID: "EMP1", FullName: "Ana", Position: "Data Analyst", Directorate: "Commercial", Grade: "IV",
			Education: str("S1"), DISC: str("D"), IQ: num(110), Pauli: num(60)},
		{ID: "EMP2", Position: "Data Analyst"},
	}
	comps := []scoreRow{
		{EmployeeID: "EMP1", Code: "QDD", Score: num(4)},
		{EmployeeID: "EMP1", Code: "CSI", Score: num(3)},
		{EmployeeID: "EMP1", Code: "XXX", Score: num(9)},
		{EmployeeID: "EMP2", Code: "QDD", Score: sql.NullFloat64{}},
		{EmployeeID: "GHOST", Code: "QDD", Score: num(5)},
	}
	papi := []scoreRow{
		{EmployeeID: "EMP1", Code: "Papi_P", Score: num(6)},
		{EmployeeID: "EMP1", Code: "Papi_P", Score: num(8)},
		{EmployeeID: "EMP2", Code: "Papi_W", Score: num(2)},
	}

	got := pivot(base, comps, papi)
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}

	e1 := got[0]
	if e1.EmployeeID != "EMP1" || e1.Directorate != "Commercial" || e1.Grade != "IV" {
		t.Errorf("unexpected master data %+v", e1)
	}
	tests := []struct {
		key  string
		want profile.Value
	}{
		{"education", profile.Text("S1")},
		{"disc", profile.Text("D")},
		{"IQ_Score", profile.Number(110)},
		{"Pauli_Score", profile.Number(60)},
		{"GTQ_Score", profile.Null()},
		{"Quality_Delivery", profile.Number(4)},
		{"Commercial_Savvy", profile.Number(3)},
		{"Papi_P", profile.Number(8)},
		{"Papi_W", profile.Null()},
	}
	for _, tt := range tests {
		got := e1.Value(tt.key)
		if got.Kind() != tt.want.Kind() || got.String() != tt.want.String() {
			t.Errorf("EMP1 %s = %v, want %v", tt.key, got, tt.want)
		}
	}
	if _, ok := e1.Attributes["XXX"]; ok {
		t.Error("unknown pillar code should be ignored")
	}

	e2 := got[1]
	if !e2.Value("Quality_Delivery").IsNull() {
		t.Error("null competency score should stay null")
	}
	if !e2.Value("education").IsNull() || !e2.Value("IQ_Score").IsNull() {
		t.Error("missing psych profile should be null")
	}
	if v, _ := e2.Value("Papi_W").Float(); v != 2 {
		t.Errorf("EMP2 Papi_W = %v, want 2", v)
	}
}

func TestEveryCatalogKeyIsSourced(t *testing.T) {
	sourced := map[string]bool{}
	for _, p := range pivot([]employeeRow{{ID: "E"}}, nil, nil) {
		for k := range p.Attributes {
			sourced[k] = true
		}
	}
	for _, k := range PillarKeys {
		sourced[k] = true
	}
	for _, k := range PAPIKeys {
		sourced[k] = true
	}

	for _, def := range catalog.DefaultDefinitions() {
		if !sourced[def.SourceKey] {
			t.Errorf("catalog attribute %q (%s) has no directory source", def.Name, def.SourceKey)
		}
	}
}

func TestNewStore(t *testing.T) {
	if NewStore(nil) == nil {
		t.Fatal("NewStore returned nil")
	}
}
