package cmd

import (
	"fmt"

	"catalog-reconciler/core/config"
	"catalog-reconciler/core/database"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCheckOnly bool

// migrateCmd creates the catalog tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the catalog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if !migrateCheckOnly {
			if err := catalog.Migrate(db); err != nil {
				return err
			}
			l.Info("Catalog tables migrated", zap.String("driver", cfg.Database.Driver))
		}

		issues, err := catalog.CheckSchema(db)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			l.Warn("Missing columns", zap.String("table", issue.Table), zap.Strings("columns", issue.Missing))
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d catalog table(s) are incomplete", len(issues))
		}
		l.Info("Catalog schema is complete")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateCheckOnly, "check", false, "Only report missing columns")
	RootCmd.AddCommand(migrateCmd)
}
