package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/corpus"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus to YAML, JSON, or Parquet",
	Long: `Export writes the corpus (or a filtered subset) to export files under
the corpus directory. The yaml and json formats dump abstracts with
their kept words; parquet dumps the word-statistics tables. Supports
the same filter flags as query for partial exports.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml, json, or parquet")
	exportCmd.Flags().String("query", "", "full-text search filter for partial export")
	exportCmd.Flags().String("accepted", "", "filter by outcome for partial export")
	exportCmd.Flags().Int("limit", 0, "maximum abstracts to export (0 = all)")
	exportCmd.Flags().String("corpus-dir", "corpus", "base directory for the corpus database")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	corpusDir := stringSetting(cmd, "corpus-dir")

	store, err := corpus.NewStore(corpusDir)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(corpusDir, "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(corpusDir, "export.json"))
	case "parquet":
		if err := store.ExportParquet(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s and %s\n",
			filepath.Join(corpusDir, "word_frequencies.parquet"),
			filepath.Join(corpusDir, "word_tfidf.parquet"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, or parquet", format)
	}

	return nil
}
