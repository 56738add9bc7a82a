package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/copperworks/labelcheck/internal/extraction"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/pipeline"
)

var (
	verifyAppID    string
	verifyAppName  string
	verifyExpected string
)

var verifyCmd = &cobra.Command{
	Use:   "verify IMAGE...",
	Short: "Verify one label application from its images",
	Long:  "Extracts fields from the given label images and validates them. With --expected, values are compared against the matching application entry; without it, the run is label-only and reports what was found.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initVerifyEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		images, err := extraction.LoadImages(args)
		if err != nil {
			return err
		}

		var values *model.ExpectedValues
		appName := verifyAppName
		if verifyExpected != "" {
			entries, err := loadExpectedEntries(verifyExpected)
			if err != nil {
				return err
			}
			entry, ok := expectedEntry(entries, verifyAppID)
			if !ok {
				return eris.Errorf("application %q not found in %s", verifyAppID, verifyExpected)
			}
			values = entry.Values
			if appName == "" {
				appName = entry.ApplicationName
			}
		}

		result, err := env.Pipeline.Run(ctx, pipeline.Request{
			ApplicationID:   verifyAppID,
			ApplicationName: appName,
			Images:          images,
			Expected:        values,
		})
		if err != nil {
			return eris.Wrap(err, "verify")
		}

		zap.L().Info("verification complete",
			zap.String("application_id", verifyAppID),
			zap.String("status", string(result.OverallStatus)),
			zap.Strings("top_reasons", result.TopReasons),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyAppID, "app-id", "", "application identifier (required)")
	verifyCmd.Flags().StringVar(&verifyAppName, "app-name", "", "application display name")
	verifyCmd.Flags().StringVar(&verifyExpected, "expected", "", "expected-values file (.yaml or .xlsx)")
	_ = verifyCmd.MarkFlagRequired("app-id")
	rootCmd.AddCommand(verifyCmd)
}
