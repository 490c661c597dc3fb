package cmd

import (
	"fmt"
	"os"

	"catalog-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-reconciler",
	Short: "Vendor catalog reconciliation service",
	Long: `Catalog Reconciler merges vendor price and inventory feeds into one master catalog.

Feeds are diffed against the last processed snapshot so only changed rows are
reconciled, and master-record ownership follows the vendor priority ranks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
