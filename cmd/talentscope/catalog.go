package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/matching"
)

func newCatalogCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List talent variables, competency groups and weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := cfg.LoadCatalog()
			if err != nil {
				return err
			}
			weights := cfg.Matching.GroupWeights()

			switch outputFmt {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Attributes []catalog.AttributeDefinition `json:"attributes"`
					Weights    matching.Weights              `json:"weights"`
				}{cat.All(), weights})
			case "text":
				printCatalog(cat, weights)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", outputFmt)
			}
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	return cmd
}

func printCatalog(cat *catalog.Catalog, weights matching.Weights) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, group := range cat.Groups() {
		weight := "-"
		if w, ok := weights[group]; ok {
			weight = fmt.Sprintf("%.2f", w)
		}
		fmt.Fprintf(tw, "%s\tweight %s\t\t\n", group, weight)
		for _, def := range cat.AttributesOf(group) {
			rule := string(def.DataType) + "/" + string(def.Direction)
			if def.Scale != "" {
				rule += " (" + def.Scale + " scale)"
			}
			fmt.Fprintf(tw, "  %2d. %s\t%s\t%s\n", def.Order, def.Name, def.SourceKey, rule)
		}
	}
	tw.Flush()
}
