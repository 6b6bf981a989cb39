package main

import (
	"fmt"

	"github.com/bagdasarian/task-groups/internal/config"
	"github.com/bagdasarian/task-groups/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDSN(*configPath, func(dsn string) error {
				if err := db.MigrateDown(dsn, steps); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
				return nil
			})
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDSN(*configPath, func(dsn string) error {
					if err := db.MigrateUp(dsn); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
					return nil
				})
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDSN(*configPath, func(dsn string) error {
					version, dirty, err := db.MigrationVersion(dsn)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
	)

	return cmd
}

// withDSN загружает конфигурацию и передает строку подключения.
// Миграции открывают собственный пул и закрывают его сами.
func withDSN(configPath string, fn func(dsn string) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return fn(cfg.Database.DSN())
}
