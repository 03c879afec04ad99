package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/extract"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract title and abstract fields from converted text",
	Long: `Extract scans each converted text file for the title and abstract
markers and writes one record YAML per submission under
submissions/records/. Records newer than their source text are skipped;
submissions missing a marker produce an incomplete record.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("submissions-dir", "submissions", "base directory for submissions (contains text/, records/)")
	extractCmd.Flags().String("markers", "", "marker-set YAML replacing the built-in field markers")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := types.ExtractionConfig{
		SubmissionsDir: stringSetting(cmd, "submissions-dir"),
		MarkersPath:    stringSetting(cmd, "markers"),
	}
	return extractStage(cfg, os.Stdout)
}

func extractStage(cfg types.ExtractionConfig, w io.Writer) error {
	markers := extract.DefaultMarkers()
	if cfg.MarkersPath != "" {
		var err error
		markers, err = extract.LoadMarkers(cfg.MarkersPath)
		if err != nil {
			return err
		}
	}

	summary, err := extract.ExtractAll(markers, cfg, w)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d submission(s) failed extraction", summary.Failed)
	}
	return nil
}
