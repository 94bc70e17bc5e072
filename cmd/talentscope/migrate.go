package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talentscope/talentscope/internal/platform"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (default: database.url from config)")

	withDB := func(fn func(cmd *cobra.Command, args []string, db *sql.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDB(firstNonEmpty(databaseURL, cfg.Database.URL))
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(cmd, args, db)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, args []string, db *sql.DB) error {
				if err := platform.AutoMigrate(db); err != nil {
					return err
				}
				return printVersion(db)
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withDB(func(cmd *cobra.Command, args []string, db *sql.DB) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid steps %q", args[0])
					}
					steps = n
				}
				if err := platform.MigrateDown(db, steps); err != nil {
					return err
				}
				return printVersion(db)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, args []string, db *sql.DB) error {
				return printVersion(db)
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the embedded migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				names, err := platform.Migrations()
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Println(n)
				}
				return nil
			},
		},
	)

	return cmd
}

func printVersion(db *sql.DB) error {
	version, dirty, err := platform.SchemaVersion(db)
	if err != nil {
		return err
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Printf("schema version %d (%s)\n", version, state)
	return nil
}
