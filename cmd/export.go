package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/copperworks/labelcheck/internal/export"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/store"
)

var (
	exportFormat string
	exportOut    string
	exportStatus string
	exportAppID  string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored reports to a file",
	Long:  "Writes matching reports as JSON, XLSX, or PDF. JSON goes to stdout when --out is omitted.",
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
			Status:        model.OverallStatus(exportStatus),
			ApplicationID: exportAppID,
			Limit:         exportLimit,
		})
		if err != nil {
			return err
		}

		switch exportFormat {
		case "json":
			if exportOut == "" {
				return export.WriteJSON(os.Stdout, reports)
			}
			err = export.WriteJSONFile(exportOut, reports)
		case "xlsx":
			if exportOut == "" {
				return eris.New("--out is required for xlsx export")
			}
			err = export.WriteXLSX(exportOut, reports)
		case "pdf":
			if exportOut == "" {
				return eris.New("--out is required for pdf export")
			}
			err = export.WritePDF(exportOut, reports)
		default:
			return eris.Errorf("unsupported format: %s (use json, xlsx, or pdf)", exportFormat)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("format", exportFormat),
			zap.String("out", exportOut),
			zap.Int("reports", len(reports)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json, xlsx, or pdf")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "filter by overall status")
	exportCmd.Flags().StringVar(&exportAppID, "app-id", "", "filter by application identifier")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum reports to export (default 100)")
	rootCmd.AddCommand(exportCmd)
}
