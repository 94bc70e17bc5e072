package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talentscope/talentscope/internal/directory"
	"github.com/talentscope/talentscope/pkg/profile"
)

func newRolesCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List the positions known to the HR database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDB(firstNonEmpty(databaseURL, cfg.Database.URL))
			if err != nil {
				return err
			}
			defer db.Close()

			names, err := directory.NewStore(db).Positions(commandContext(cmd))
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "HR database URL (default: database.url from config)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		databaseURL string
		role        string
		ids         []string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot employee profiles from the HR database to a JSON file",
		Long: `Exports the profiles of every employee in a role, plus any extra employee IDs,
so that runs can be reproduced offline with "talentscope match --profiles".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role == "" && len(ids) == 0 {
				return fmt.Errorf("pass --role, --id, or both")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDB(firstNonEmpty(databaseURL, cfg.Database.URL))
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := commandContext(cmd)
			store := directory.NewStore(db)

			var profiles []profile.EmployeeProfile
			if role != "" {
				inRole, err := store.AllEmployeesForRole(ctx, role)
				if err != nil {
					return err
				}
				profiles = append(profiles, inRole...)
			}
			if len(ids) > 0 {
				extra, err := store.ResolveEmployees(ctx, ids)
				if err != nil {
					return err
				}
				profiles = append(profiles, extra...)
			}
			profiles = profile.NewMemoryStore(profiles...).Profiles()

			if err := profile.SaveProfiles(out, profiles); err != nil {
				return err
			}
			abs, _ := filepath.Abs(out)
			fmt.Fprintf(os.Stderr, "Exported %d profiles to %s\n", len(profiles), abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "HR database URL (default: database.url from config)")
	cmd.Flags().StringVar(&role, "role", "", "Export every employee holding this position")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "Additional employee IDs to export (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&out, "out", "o", "profiles.json", "Output file")
	return cmd
}
