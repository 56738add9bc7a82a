package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/copperworks/labelcheck/internal/extraction"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/pipeline"
)

var (
	batchExpected  string
	batchImagesDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Verify every application listed in an expected-values file",
	Long:  "Runs verification for each entry in the file. Image paths in each entry resolve relative to --images-dir. One failing application does not stop the batch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initVerifyEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		entries, err := loadExpectedEntries(batchExpected)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return eris.Errorf("no applications in %s", batchExpected)
		}

		counts := map[model.OverallStatus]int{}
		for _, entry := range entries {
			if ctx.Err() != nil {
				return eris.Wrap(ctx.Err(), "batch canceled")
			}
			if len(entry.Images) == 0 {
				zap.L().Warn("skipping application with no images",
					zap.String("application_id", entry.ApplicationID),
				)
				continue
			}

			paths := make([]string, len(entry.Images))
			for i, img := range entry.Images {
				paths[i] = filepath.Join(batchImagesDir, img)
			}
			images, err := extraction.LoadImages(paths)
			if err != nil {
				zap.L().Error("skipping application, images unreadable",
					zap.String("application_id", entry.ApplicationID),
					zap.Error(err),
				)
				counts[model.OverallError]++
				continue
			}

			result, err := env.Pipeline.Run(ctx, pipeline.Request{
				ApplicationID:   entry.ApplicationID,
				ApplicationName: entry.ApplicationName,
				Images:          images,
				Expected:        entry.Values,
			})
			if err != nil {
				zap.L().Error("application verification failed",
					zap.String("application_id", entry.ApplicationID),
					zap.Error(err),
				)
				counts[model.OverallError]++
				continue
			}
			counts[result.OverallStatus]++
		}

		zap.L().Info("batch complete",
			zap.Int("total", len(entries)),
			zap.Int("pass", counts[model.OverallPass]),
			zap.Int("needs_review", counts[model.OverallNeedsReview]),
			zap.Int("fail", counts[model.OverallFail]),
			zap.Int("error", counts[model.OverallError]),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchExpected, "expected", "", "expected-values file (.yaml or .xlsx) (required)")
	batchCmd.Flags().StringVar(&batchImagesDir, "images-dir", ".", "directory image paths resolve against")
	_ = batchCmd.MarkFlagRequired("expected")
	rootCmd.AddCommand(batchCmd)
}
