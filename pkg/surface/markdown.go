package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/talentscope/talentscope/pkg/matching"
)

// MarkdownRenderer produces a Markdown report suitable for sharing a run.
type MarkdownRenderer struct {
	Top       int
	Threshold float64
}

func (r *MarkdownRenderer) Render(w io.Writer, table *matching.ResultTable) error {
	_, err := io.WriteString(w, r.Build(table))
	return err
}

// Build creates the Markdown report.
func (r *MarkdownRenderer) Build(table *matching.ResultTable) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## TalentScope: %s\n\n", table.RoleName))
	if table.Purpose != "" {
		sb.WriteString(table.Purpose + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("Run `%s`, benchmarks: %s\n\n", table.RunID, strings.Join(table.BenchmarkIDs, ", ")))

	if table.Empty() {
		sb.WriteString("No eligible candidates.\n")
		return sb.String()
	}

	// Summary
	s := matching.Summarize(table, r.Threshold)
	sb.WriteString("### Summary\n\n")
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Candidates | %d |\n", s.TotalCandidates))
	sb.WriteString(fmt.Sprintf("| Qualified | %d |\n", s.Qualified))
	sb.WriteString(fmt.Sprintf("| Average match | %.2f |\n", s.AverageMatchRate))
	sb.WriteString(fmt.Sprintf("| Top match | %.2f |\n", s.TopMatchRate))
	sb.WriteString("\n")

	// Ranking
	n := limit(r.Top, len(table.Ranking))
	sb.WriteString("### Ranking\n\n")
	sb.WriteString("| Rank | Employee | Directorate | Grade | Match | Fit |\n")
	sb.WriteString("|------|----------|-------------|-------|-------|-----|\n")
	for _, fs := range table.Ranking[:n] {
		id := fs.EmployeeID
		if fs.IsBenchmark {
			id += " *"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %.2f | %s |\n",
			fs.Rank, id, fs.Directorate, fs.Grade, fs.FinalMatchRate, matching.FitFor(fs.FinalMatchRate)))
	}
	if len(table.Ranking) > n {
		sb.WriteString(fmt.Sprintf("\n*... and %d more*\n", len(table.Ranking)-n))
	}
	sb.WriteString("\n")

	// Benchmark comparison
	if cmp := matching.CompareBenchmark(table); len(cmp) > 0 {
		sb.WriteString("### Benchmark vs pool\n\n")
		sb.WriteString("| Group | Benchmark | Pool | Gap |\n|-------|-----------|------|-----|\n")
		for _, c := range cmp {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %+.2f |\n", c.GroupName, c.BenchmarkAverage, c.PoolAverage, c.Gap))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n*\\* benchmark employee*\n")
	return sb.String()
}
