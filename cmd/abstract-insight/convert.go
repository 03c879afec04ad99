package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/convert"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf-files...]",
	Short: "Convert submission PDFs to plain text",
	Long: `Convert runs each submission PDF through a layout-preserving text
extractor and writes a same-stem .txt file under submissions/text/.
Submissions that already have text output are skipped. With no arguments,
every PDF under submissions/pdf/ is processed.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", "auto", "conversion backend: auto, pdftotext, or builtin")
	convertCmd.Flags().String("submissions-dir", "submissions", "base directory for submissions (contains pdf/, text/)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := types.ConversionConfig{
		Backend:        types.ConversionBackend(stringSetting(cmd, "backend")),
		SubmissionsDir: stringSetting(cmd, "submissions-dir"),
	}
	return convertStage(cfg, args, os.Stdout)
}

func convertStage(cfg types.ConversionConfig, pdfPaths []string, w io.Writer) error {
	converter, backend, err := convert.SelectConverter(cfg.Backend)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "using %s backend\n", backend)

	if len(pdfPaths) == 0 {
		pdfPaths, err = convert.ListPDFs(cfg.SubmissionsDir)
		if err != nil {
			return err
		}
	}
	if len(pdfPaths) == 0 {
		fmt.Fprintln(w, "no PDFs found")
		return nil
	}

	result := convert.ConvertBatch(converter, pdfPaths, cfg.SubmissionsDir, w)
	if result.HasFailures() {
		return fmt.Errorf("%d submission(s) failed conversion", result.Failed)
	}
	return nil
}
