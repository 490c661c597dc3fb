package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	yesConfirm bool
	vendorName string
)

// priorityCmd is the parent command for vendor priority operations.
var priorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "Inspect and repair vendor priority ranks",
}

var priorityRankCmd = &cobra.Command{
	Use:   "rank <vendor>...",
	Short: "Resolve vendor ranks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := bootstrap(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close()

		for _, slug := range args {
			rank, err := a.registry.Rank(ctx, slug)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", slug, rank)
		}
		return nil
	},
}

var prioritySetCmd = &cobra.Command{
	Use:   "set <vendor> <rank>",
	Short: "Create a vendor or change its rank",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rank, err := strconv.Atoi(args[1])
		if err != nil || rank <= 0 {
			return fmt.Errorf("rank must be a positive integer, got %q", args[1])
		}

		ctx := context.Background()
		a, err := bootstrap(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close()

		v, err := a.vendors.UpsertVendor(ctx, strings.ToLower(strings.TrimSpace(args[0])), vendorName, &rank)
		if err != nil {
			return fmt.Errorf("failed to set rank: %w", err)
		}
		a.logger.Info("Vendor rank set", zap.String("vendor", v.Slug), zap.Int("rank", rank))
		return nil
	},
}

var priorityValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that ranks form the sequence 1..N",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := bootstrap(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.registry.ValidateConsistency(ctx)
		if err != nil {
			return err
		}
		if report.IsValid {
			a.logger.Info("Vendor priority ranks are consistent")
			return nil
		}
		for _, issue := range report.Issues {
			a.logger.Warn("Priority issue", zap.String("issue", issue))
		}
		for _, rec := range report.Recommendations {
			a.logger.Info("Recommendation", zap.String("recommendation", rec))
		}
		return report.Err()
	},
}

var priorityAutoFixCmd = &cobra.Command{
	Use:   "autofix",
	Short: "Renumber vendor ranks to 1..N in their current order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := bootstrap(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.registry.ValidateConsistency(ctx)
		if err != nil {
			return err
		}
		if report.IsValid {
			a.logger.Info("Vendor priority ranks are already consistent")
			return nil
		}
		for _, issue := range report.Issues {
			a.logger.Warn("Priority issue", zap.String("issue", issue))
		}

		if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
			a.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		updated, err := a.registry.AutoFix(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("Vendor ranks renumbered", zap.Int("vendors_updated", updated))
		return nil
	},
}

func init() {
	prioritySetCmd.Flags().StringVar(&vendorName, "name", "", "Display name of the vendor")
	priorityAutoFixCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")

	priorityCmd.AddCommand(priorityRankCmd, prioritySetCmd, priorityValidateCmd, priorityAutoFixCmd)
	RootCmd.AddCommand(priorityCmd)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "Type 'yes' to rewrite vendor ranks: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
