package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/geotrace-go/internal/database"
)

func migrateCommand(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the observation store schema",
	}

	run := func(fn func(cmd *cobra.Command, dbPath string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return fn(cmd, cfg.DBPath)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, dbPath string) error {
				return withDB(dbPath, database.MigrateUp)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, dbPath string) error {
				return withDB(dbPath, database.MigrateDown)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, dbPath string) error {
				return withDB(dbPath, func(conn *sql.DB) error {
					version, dirty, err := database.MigrateVersion(conn)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
					return nil
				})
			}),
		},
	)

	return cmd
}

func withDB(path string, fn func(*sql.DB) error) error {
	conn, err := database.Open(path)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}
