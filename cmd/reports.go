package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/store"
)

var (
	reportsStatus string
	reportsAppID  string
	reportsLimit  int
	reportsOffset int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect stored verification reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		reports, err := st.ListReports(ctx, store.ReportFilter{
			Status:        model.OverallStatus(reportsStatus),
			ApplicationID: reportsAppID,
			Limit:         reportsLimit,
			Offset:        reportsOffset,
		})
		if err != nil {
			return err
		}

		for _, r := range reports {
			fmt.Printf("%s  %-12s  %-20s  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Status,
				r.ApplicationID,
				r.ID,
			)
		}
		fmt.Printf("%d report(s)\n", len(reports))
		return nil
	},
}

var reportsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Print one report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		report, err := st.GetReport(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete one report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteReport(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsStatus, "status", "", "filter by overall status (pass, needs_review, fail, error)")
	reportsListCmd.Flags().StringVar(&reportsAppID, "app-id", "", "filter by application identifier")
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 0, "maximum reports to list (default 100)")
	reportsListCmd.Flags().IntVar(&reportsOffset, "offset", 0, "reports to skip")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsGetCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
	rootCmd.AddCommand(reportsCmd)
}
