package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/wedding-venue-booking/internal/config"
	"github.com/iliyamo/wedding-venue-booking/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the MySQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := database.MigrateUp(db); err != nil {
					return err
				}
				return printVersion(cmd, db)
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := database.MigrateDown(db, steps); err != nil {
					return err
				}
				return printVersion(cmd, db)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 = all)")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error { return printVersion(cmd, db) })
		},
	})
	return cmd
}

func withDB(fn func(db *sql.DB) error) error {
	cfg, err := config.LoadDB()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	return fn(db)
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	v, dirty, err := database.Version(db)
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty=%t)\n", v, dirty)
	return nil
}
