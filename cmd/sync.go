package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/feature/vendorsync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncFile     string
	syncCompany  uint
	syncDryRun   bool
	syncOverride bool
	syncFull     bool
)

// syncCmd runs one vendor feed through the reconciliation core.
var syncCmd = &cobra.Command{
	Use:   "sync <vendor>",
	Short: "Reconcile a vendor feed file",
	Long: `Reconcile a vendor feed against the master catalog.

The feed is compared with the last successful snapshot of the vendor and scope,
and only changed lines are reconciled.

Examples:
  # Global pricing from a file
  sync lipseys --file ./feeds/lipseys.csv

  # Store-specific pricing, read from stdin, without writing
  cat feed.csv | sync davidsons --company 42 --dry-run

  # Ignore the stored snapshot and process every line
  sync lipseys --file ./feeds/lipseys.csv --full`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncFile, "file", "f", "-", "Feed file, - for stdin")
	syncCmd.Flags().UintVar(&syncCompany, "company", 0, "Company ID for store-specific pricing (0 = global)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan the reconciliation without writing")
	syncCmd.Flags().BoolVar(&syncOverride, "override", false, "Force master-record proposals regardless of priority")
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "Ignore the stored snapshot")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	feed, err := readFeed(cmd.InOrStdin(), syncFile)
	if err != nil {
		return err
	}

	a, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.checkSchema(); err != nil {
		return err
	}

	job := vendorsync.Job{
		Vendor:         args[0],
		Scope:          reconcile.GlobalScope(),
		DryRun:         syncDryRun,
		ManualOverride: syncOverride,
		Full:           syncFull,
	}
	if syncCompany > 0 {
		job.Scope = reconcile.CompanyScope(syncCompany)
	}

	res, err := a.runner.Run(ctx, job, feed)
	if err != nil {
		return fmt.Errorf("sync %s failed: %w", args[0], err)
	}

	a.logger.Info("Sync finished",
		zap.String("run_id", res.RunID),
		zap.String("status", res.Status),
		zap.Bool("dry_run", res.DryRun),
		zap.Int("changed_lines", res.Diff.ChangedLines),
		zap.Int("removed_lines", res.Diff.RemovedLines),
		zap.Int("added", res.Stats.RecordsAdded),
		zap.Int("updated", res.Stats.RecordsUpdated),
		zap.Int("skipped", res.Stats.RecordsSkipped),
		zap.Int("errors", res.Stats.RecordsErrors),
		zap.Int("masters_updated", res.Stats.MastersUpdated),
	)
	if res.Busy {
		a.logger.Warn("Another run of this job is in progress; nothing was done")
	}
	return nil
}

func readFeed(stdin io.Reader, path string) (string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open feed: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read feed: %w", err)
	}
	return string(data), nil
}
