package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talentscope/talentscope/pkg/matching"
	"github.com/talentscope/talentscope/pkg/profile"
)

func TestMatchCmdFlags(t *testing.T) {
	cmd := newMatchCmd()
	f := cmd.Flags()

	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}
	top, _ := f.GetInt("top")
	if top != 10 {
		t.Errorf("default top = %d, want 10", top)
	}

	for _, flag := range []string{"role", "level", "purpose", "benchmarks", "profiles", "database-url", "weight", "unweighted", "output", "top", "employee"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestMigrateCmdSubcommands(t *testing.T) {
	cmd := newMigrateCmd()
	for _, name := range []string{"up", "down", "version", "list"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

func TestParseWeights(t *testing.T) {
	w, err := parseWeights([]string{"Execution Excellence=0.5", " Cognitive Complexity = 1 "})
	if err != nil {
		t.Fatalf("parseWeights: %v", err)
	}
	if w["Execution Excellence"] != 0.5 || w["Cognitive Complexity"] != 1 {
		t.Errorf("unexpected weights %v", w)
	}

	for _, bad := range []string{"no-equals", "=1", "Group=abc", "Group=-1"} {
		if _, err := parseWeights([]string{bad}); err == nil {
			t.Errorf("parseWeights(%q) should fail", bad)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func writeProfiles(t *testing.T) string {
	t.Helper()
	p := func(id string, iq float64) profile.EmployeeProfile {
		return profile.EmployeeProfile{
			EmployeeID: id, Position: "Data Analyst", Directorate: "Commercial", Grade: "IV",
			Attributes: map[string]profile.Value{"IQ_Score": profile.Number(iq)},
		}
	}
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := profile.SaveProfiles(path, []profile.EmployeeProfile{p("E1", 100), p("E2", 120), p("E3", 99), p("E4", 150)}); err != nil {
		t.Fatalf("SaveProfiles: %v", err)
	}
	return path
}

func TestMatchCmdJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeProfiles(t)

	cmd := newMatchCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--role", "data analyst", "--benchmarks", "E1, E2", "--profiles", path, "--output", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("match: %v", err)
	}

	var table matching.ResultTable
	if err := json.Unmarshal(out.Bytes(), &table); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(table.Ranking) != 4 {
		t.Fatalf("expected 4 ranked employees, got %d", len(table.Ranking))
	}
	e3, _ := table.FinalScore("E3")
	if e3.FinalMatchRate != 90 {
		t.Errorf("E3 final = %v, want 90", e3.FinalMatchRate)
	}
}

func TestMatchCmdEmployee(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "1")
	path := writeProfiles(t)

	cmd := newMatchCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--role", "Data Analyst", "--benchmarks", "E1 E2", "--profiles", path, "--employee", "E3", "--unweighted"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out.String(), "E3  rank 4  90.00") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestMatchCmdRejectsBadInput(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeProfiles(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no ids in benchmarks", []string{"--benchmarks", ";;"}},
		{"unknown output", []string{"--benchmarks", "E1", "--output", "xml"}},
		{"weights conflict", []string{"--benchmarks", "E1", "--unweighted", "--weight", "Cognitive Complexity=1"}},
		{"unresolved benchmarks", []string{"--benchmarks", "X1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newMatchCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append([]string{"--role", "Data Analyst", "--profiles", path}, tc.args...))
			if err := cmd.Execute(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
