package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentscope/talentscope/pkg/benchmark"
	"github.com/talentscope/talentscope/pkg/matching"
	"github.com/talentscope/talentscope/pkg/surface"
)

type matchOpts struct {
	role        string
	level       string
	purpose     string
	benchmarks  string
	profiles    string
	databaseURL string
	weights     []string
	unweighted  bool
	outputFmt   string
	top         int
	employee    string
}

func newMatchCmd() *cobra.Command {
	var opts matchOpts

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank employees in a role against benchmark employees",
		Long: `Derives a baseline from the benchmark employees, scores every employee
holding the role against it, and prints the ranking.

Benchmarks are a free-text list of employee IDs; any separator works:
  talentscope match --role "Data Analyst" --benchmarks "EMP100012, EMP100034 EMP100051"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.role, "role", "", "Target role (position name, case-insensitive; required)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Job level of the vacancy")
	cmd.Flags().StringVar(&opts.purpose, "purpose", "", "Role purpose of the vacancy")
	cmd.Flags().StringVar(&opts.benchmarks, "benchmarks", "", "Benchmark employee IDs (required)")
	cmd.Flags().StringVar(&opts.profiles, "profiles", "", "Read employee profiles from a JSON file instead of the database")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "HR database URL (default: database.url from config)")
	cmd.Flags().StringArrayVar(&opts.weights, "weight", nil, `Group weight as "GROUP=WEIGHT"; repeatable, replaces configured weights`)
	cmd.Flags().BoolVar(&opts.unweighted, "unweighted", false, "Average competency groups without weights")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, markdown or json")
	cmd.Flags().IntVar(&opts.top, "top", surface.DefaultTop, "Ranked employees to show")
	cmd.Flags().StringVar(&opts.employee, "employee", "", "Show the detailed breakdown of one employee")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("benchmarks")

	return cmd
}

func runMatch(cmd *cobra.Command, opts matchOpts) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	renderer, ok := surface.ForFormat(opts.outputFmt, opts.top, cfg.Matching.QualifiedThreshold)
	if !ok {
		return fmt.Errorf("unknown output format %q", opts.outputFmt)
	}

	ids := benchmark.ParseIDs(opts.benchmarks)
	if len(ids) == 0 {
		return fmt.Errorf("no employee IDs found in --benchmarks %q", opts.benchmarks)
	}

	weights := cfg.Matching.GroupWeights()
	switch {
	case opts.unweighted && len(opts.weights) > 0:
		return fmt.Errorf("--unweighted and --weight are mutually exclusive")
	case opts.unweighted:
		weights = nil
	case len(opts.weights) > 0:
		if weights, err = parseWeights(opts.weights); err != nil {
			return err
		}
	}

	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	engine, err := matching.NewEngine(cat, cfg.Matching.EngineOptions()...)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(opts.profiles, firstNonEmpty(opts.databaseURL, cfg.Database.URL))
	if err != nil {
		return err
	}
	defer closeSrc()

	runCfg := matching.NewRunConfig(opts.role, ids, weights)
	runCfg.LevelName = opts.level
	runCfg.Purpose = opts.purpose

	fmt.Fprintf(os.Stderr, "Matching %q against %d benchmark(s): %s\n", runCfg.RoleName, len(runCfg.BenchmarkIDs), benchmark.Join(runCfg.BenchmarkIDs))
	start := time.Now()
	table, err := engine.Run(ctx, src, runCfg)
	if err != nil {
		return fmt.Errorf("run %s: %w", runCfg.RunID, err)
	}
	fmt.Fprintf(os.Stderr, "Ranked %d employee(s) in %s\n", len(table.Ranking), time.Since(start).Round(time.Millisecond))
	if missing := len(runCfg.BenchmarkIDs) - len(table.BenchmarkIDs); missing > 0 {
		fmt.Fprintf(os.Stderr, "  Warning: %d benchmark ID(s) did not resolve to an employee\n", missing)
	}

	if opts.employee != "" {
		return renderEmployee(cmd.OutOrStdout(), table, opts.employee, opts.outputFmt)
	}
	return renderer.Render(cmd.OutOrStdout(), table)
}

func renderEmployee(w io.Writer, table *matching.ResultTable, employeeID, format string) error {
	in, ok := matching.Insights(table, employeeID)
	if !ok {
		return fmt.Errorf("employee %s is not ranked for role %q", employeeID, table.RoleName)
	}
	if format == "json" {
		return (&surface.JSONRenderer{}).RenderValue(w, in)
	}
	return surface.RenderInsight(w, in, table.RowsFor(employeeID))
}
