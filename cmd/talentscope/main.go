// Package main provides the talentscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "talentscope",
		Short: "Benchmark-driven talent matching",
		Long: `TalentScope derives a baseline profile from a set of benchmark employees
and ranks every employee holding a role by how closely they match it.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: .talentscope/config.yaml in a parent directory)")

	rootCmd.AddCommand(
		newMatchCmd(),
		newCatalogCmd(),
		newRolesCmd(),
		newExportCmd(),
		newMigrateCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
