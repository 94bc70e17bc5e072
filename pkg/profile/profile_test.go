package profile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/talentscope/talentscope/pkg/profile"
)

func sampleProfiles() []profile.EmployeeProfile {
	return []profile.EmployeeProfile{
		{EmployeeID: "E1", Position: "Data Analyst", Attributes: map[string]profile.Value{"IQ_Score": profile.Number(100)}},
		{EmployeeID: "E2", Position: "data analyst", Attributes: map[string]profile.Value{"IQ_Score": profile.Number(120)}},
		{EmployeeID: "E3", Position: "HRBP"},
	}
}

func TestMemoryStoreResolveEmployees(t *testing.T) {
	s := profile.NewMemoryStore(sampleProfiles()...)
	ctx := context.Background()

	got, err := s.ResolveEmployees(ctx, []string{"E2", "missing", "E1"})
	if err != nil {
		t.Fatalf("ResolveEmployees: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	if got[0].EmployeeID != "E2" || got[1].EmployeeID != "E1" {
		t.Errorf("expected request order E2, E1; got %s, %s", got[0].EmployeeID, got[1].EmployeeID)
	}
}

func TestMemoryStoreAllEmployeesForRole(t *testing.T) {
	s := profile.NewMemoryStore(sampleProfiles()...)

	got, err := s.AllEmployeesForRole(context.Background(), "DATA ANALYST")
	if err != nil {
		t.Fatalf("AllEmployeesForRole: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 data analysts, got %d", len(got))
	}

	none, err := s.AllEmployeesForRole(context.Background(), "Finance Officer")
	if err != nil {
		t.Fatalf("AllEmployeesForRole: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no finance officers, got %d", len(none))
	}
}

func TestMemoryStoreDuplicateReplaces(t *testing.T) {
	s := profile.NewMemoryStore(
		profile.EmployeeProfile{EmployeeID: "E1", Grade: "III"},
		profile.EmployeeProfile{EmployeeID: "E1", Grade: "IV"},
	)
	if s.Len() != 1 {
		t.Fatalf("expected 1 profile, got %d", s.Len())
	}
	got, _ := s.ResolveEmployees(context.Background(), []string{"E1"})
	if got[0].Grade != "IV" {
		t.Errorf("grade = %q, want IV", got[0].Grade)
	}
	if all := s.Profiles(); len(all) != 1 || all[0].Grade != "IV" {
		t.Errorf("Profiles() = %+v", all)
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	s := profile.NewMemoryStore(sampleProfiles()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ResolveEmployees(ctx, []string{"E1"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestProfileValueMissingKey(t *testing.T) {
	p := profile.EmployeeProfile{EmployeeID: "E9"}
	if !p.Value("IQ_Score").IsNull() {
		t.Error("missing attribute should be null")
	}
}

func TestSaveLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profiles.json")

	if err := profile.SaveProfiles(path, sampleProfiles()); err != nil {
		t.Fatalf("SaveProfiles: %v", err)
	}

	got, err := profile.LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(got))
	}
	if v, _ := got[1].Value("IQ_Score").Float(); v != 120 {
		t.Errorf("E2 IQ_Score = %v, want 120", v)
	}
	if _, err := profile.LoadProfiles(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
