package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: convert, extract, join, tokenize, report",
	Long: `Run executes every pipeline stage in order against the same
directories the individual subcommands use. A stage failure stops the
pipeline.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("backend", "auto", "conversion backend: auto, pdftotext, or builtin")
	runCmd.Flags().String("submissions-dir", "submissions", "base directory for submissions")
	runCmd.Flags().String("acceptance", "acceptance.csv", "path to the acceptance-outcome CSV")
	runCmd.Flags().String("corpus-dir", "corpus", "base directory for the corpus database")
	runCmd.Flags().String("report-dir", "report", "directory the rendered report is written to")
	runCmd.Flags().String("markers", "", "marker-set YAML replacing the built-in field markers")
	runCmd.Flags().String("stopwords", "", "newline-separated stop-word list replacing the built-in one")
	runCmd.Flags().StringSlice("keep", nil, "words exempt from stop-word removal (default: r)")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetStringSlice("keep")
	submissionsDir := stringSetting(cmd, "submissions-dir")
	corpusDir := stringSetting(cmd, "corpus-dir")

	cfg := types.PipelineConfig{
		Conversion: types.ConversionConfig{
			Backend:        types.ConversionBackend(stringSetting(cmd, "backend")),
			SubmissionsDir: submissionsDir,
		},
		Extraction: types.ExtractionConfig{
			SubmissionsDir: submissionsDir,
			MarkersPath:    stringSetting(cmd, "markers"),
		},
		Join: types.JoinConfig{
			SubmissionsDir: submissionsDir,
			AcceptancePath: stringSetting(cmd, "acceptance"),
			CorpusDir:      corpusDir,
		},
		Tokenize: types.TokenizeConfig{
			CorpusDir:     corpusDir,
			StopWordsPath: stringSetting(cmd, "stopwords"),
			KeepWords:     keep,
		},
		Report: types.ReportConfig{
			CorpusDir: corpusDir,
			ReportDir: stringSetting(cmd, "report-dir"),
		},
	}
	return pipeline(cfg, os.Stdout)
}

func pipeline(cfg types.PipelineConfig, w io.Writer) error {
	stages := []struct {
		name string
		run  func() error
	}{
		{"convert", func() error { return convertStage(cfg.Conversion, nil, w) }},
		{"extract", func() error { return extractStage(cfg.Extraction, w) }},
		{"join", func() error { return joinStage(cfg.Join, w) }},
		{"tokenize", func() error { return tokenizeStage(cfg.Tokenize, w) }},
		{"report", func() error { return reportStage(cfg.Report, w) }},
	}

	for _, stage := range stages {
		fmt.Fprintf(w, "--- %s ---\n", stage.name)
		if err := stage.run(); err != nil {
			return fmt.Errorf("%s stage: %w", stage.name, err)
		}
		fmt.Fprintln(w)
	}
	return nil
}
