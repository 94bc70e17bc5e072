package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/talentscope/talentscope/pkg/matching"
)

// RenderInsight writes one employee's breakdown: rank, fit, group rates and
// every scored attribute against its baseline.
func RenderInsight(w io.Writer, in matching.Insight, rows []matching.Row) error {
	fmt.Fprintf(w, "%s  rank %d  %.2f  %s\n", bold(in.EmployeeID), in.Rank, in.FinalMatchRate,
		colored(string(in.Fit), fitColor(in.Fit)))
	if len(rows) > 0 {
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s / %s / %s", rows[0].Role, rows[0].Directorate, rows[0].Grade)))
	}
	fmt.Fprintln(w)

	group := ""
	for _, r := range rows {
		if r.GroupName != group {
			group = r.GroupName
			fmt.Fprintf(w, "%s %.2f\n", bold(group), r.GroupMatchRate)
		}
		fmt.Fprintf(w, "  %-20s %10s %10s %7.2f\n",
			r.AttributeName, r.BaselineValue.String(), r.CandidateValue.String(), r.AttributeMatchRate)
	}
	fmt.Fprintln(w)

	if len(in.WeakGroups) > 0 {
		fmt.Fprintf(w, "Below 70 in: %s\n", strings.Join(in.WeakGroups, ", "))
	}
	if len(in.DevelopmentAreas) > 0 {
		fmt.Fprintln(w, "Development areas:")
		for _, g := range in.DevelopmentAreas {
			fmt.Fprintf(w, "  %-20s gap %.2f\n", g.AttributeName, g.Gap)
		}
	}
	return nil
}
