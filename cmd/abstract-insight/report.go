package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/corpus"
	"github.com/pdiddy/abstract-insight/internal/report"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute word statistics and render the HTML report",
	Long: `Report computes per-outcome word frequencies, tf-idf weights, abstract
length densities, and keyword phrases over the tokenized corpus, saves
the statistics tables to the database, and renders report/report.html.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("corpus-dir", "corpus", "base directory for the corpus database")
	reportCmd.Flags().String("report-dir", "report", "directory the rendered report is written to")
	reportCmd.Flags().Int("top-words", 20, "words per outcome in the frequency charts")
	reportCmd.Flags().Int("top-tfidf", 10, "words per outcome in the tf-idf charts")
	reportCmd.Flags().Int("top-keywords", 10, "phrases per outcome in the keyword charts")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := types.ReportConfig{
		CorpusDir:   stringSetting(cmd, "corpus-dir"),
		ReportDir:   stringSetting(cmd, "report-dir"),
		TopWords:    intSetting(cmd, "top-words"),
		TopTfIdf:    intSetting(cmd, "top-tfidf"),
		TopKeywords: intSetting(cmd, "top-keywords"),
	}
	return reportStage(cfg, os.Stdout)
}

func reportStage(cfg types.ReportConfig, w io.Writer) error {
	store, err := corpus.NewStore(cfg.CorpusDir)
	if err != nil {
		return err
	}
	defer store.Close()

	return report.Build(context.Background(), store, cfg, w)
}
