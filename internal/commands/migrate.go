package commands

import (
	"fmt"

	"github.com/monocle-dev/taskboard/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.MigrateDatabase(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		logger.Info("migrations applied", "tables", len(db.Models))
		return nil
	},
}
