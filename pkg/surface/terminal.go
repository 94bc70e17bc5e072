package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/talentscope/talentscope/pkg/matching"
)

// TerminalRenderer renders a ResultTable as colored terminal output.
type TerminalRenderer struct {
	Top       int     // ranked employees to list; 0 means DefaultTop
	Threshold float64 // qualified threshold; 0 means the default
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const insightCount = 3

func fitColor(fit matching.FitLevel) string {
	if noColor() {
		return ""
	}
	switch fit {
	case matching.FitExcellent, matching.FitGood:
		return colorGreen
	case matching.FitModerate:
		return colorYellow
	case matching.FitBelow:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, table *matching.ResultTable) error {
	// Header
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("TalentScope: %s", table.RoleName)))
	if table.LevelName != "" {
		fmt.Fprintf(w, "Level: %s\n", table.LevelName)
	}
	fmt.Fprintf(w, "%s\n\n", dim("run "+table.RunID))

	fmt.Fprintf(w, "Benchmarks: %s (%d baseline attributes)\n\n",
		strings.Join(table.BenchmarkIDs, ", "), table.Baseline.Len())

	if table.Empty() {
		fmt.Fprintln(w, "No eligible candidates.")
		fmt.Fprintln(w)
		return nil
	}

	// Summary
	s := matching.Summarize(table, r.Threshold)
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = matching.DefaultQualifiedThreshold
	}
	fmt.Fprintf(w, "Candidates: %d  Qualified (>= %.0f): %d  Average: %.2f  Top: %.2f\n",
		s.TotalCandidates, threshold, s.Qualified, s.AverageMatchRate, s.TopMatchRate)
	fmt.Fprintf(w, "Fit: %d high / %d moderate / %d development needed\n\n",
		s.HighFit, s.ModerateFit, s.DevelopmentNeeded)

	// Ranking
	n := limit(r.Top, len(table.Ranking))
	fmt.Fprintln(w, "Ranking:")
	for _, fs := range table.Ranking[:n] {
		fit := matching.FitFor(fs.FinalMatchRate)
		line := fmt.Sprintf("  %3d. %-12s %-20s %-6s %6.2f  %s",
			fs.Rank, fs.EmployeeID, fs.Directorate, fs.Grade, fs.FinalMatchRate,
			colored(string(fit), fitColor(fit)))
		if fs.IsBenchmark {
			line += " " + dim("[benchmark]")
		}
		fmt.Fprintln(w, line)
	}
	if len(table.Ranking) > n {
		fmt.Fprintf(w, "       %s\n", dim(fmt.Sprintf("... and %d more", len(table.Ranking)-n)))
	}
	fmt.Fprintln(w)

	// Insights for the top candidates
	fmt.Fprintln(w, "Top candidates:")
	for _, fs := range table.Ranking[:limit(insightCount, n)] {
		in, _ := matching.Insights(table, fs.EmployeeID)
		fmt.Fprintf(w, "  %s %s %.2f\n", colored("●", fitColor(in.Fit)), bold(fs.EmployeeID), fs.FinalMatchRate)
		if len(in.TopGroups) > 0 {
			fmt.Fprintf(w, "    strongest: %s\n", groupList(in.TopGroups))
		}
		if len(in.Strengths) > 0 {
			fmt.Fprintf(w, "    strengths: %s\n", dim(gapList(in.Strengths)))
		}
		if len(in.DevelopmentAreas) > 0 {
			fmt.Fprintf(w, "    develop:   %s\n", dim(gapList(in.DevelopmentAreas)))
		}
	}
	fmt.Fprintln(w)

	// Benchmark comparison
	if cmp := matching.CompareBenchmark(table); len(cmp) > 0 {
		fmt.Fprintln(w, "Benchmark vs pool:")
		for _, c := range cmp {
			fmt.Fprintf(w, "  %-24s %6.2f %6.2f  %+.2f\n", c.GroupName, c.BenchmarkAverage, c.PoolAverage, c.Gap)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func groupList(groups []matching.GroupMatchRecord) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%s (%.1f)", g.GroupName, g.GroupMatchRate))
	}
	return strings.Join(parts, ", ")
}

// gapList lists at most three attributes.
func gapList(gaps []matching.Gap) string {
	if len(gaps) > 3 {
		gaps = gaps[:3]
	}
	parts := make([]string, 0, len(gaps))
	for _, g := range gaps {
		parts = append(parts, fmt.Sprintf("%s (%.1f)", g.AttributeName, g.AttributeMatchRate))
	}
	return strings.Join(parts, ", ")
}
