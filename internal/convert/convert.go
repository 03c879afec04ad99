// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-text conversion with pluggable backends.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

const (
	// pdfDir is the subdirectory under the submissions base for input PDFs.
	pdfDir = "pdf"
	// textDir is the subdirectory under the submissions base for converted text.
	textDir = "text"
)

// Converter transforms a PDF file into plain text. The external pdftotext
// tool and the built-in extractor implement this interface.
type Converter interface {
	// Convert reads a PDF at pdfPath and returns its plain text.
	Convert(pdfPath string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of submissions processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any submissions failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertSubmission converts a single PDF to text, writing the result as a
// same-stem .txt file under the text directory. It returns the status of the
// conversion. A non-empty output file that already exists is left alone and
// the conversion is skipped; an empty one is treated as absent so a previous
// failed run does not wedge the stage.
func ConvertSubmission(c Converter, pdfPath, submissionsDir string, w io.Writer) types.ConversionStatus {
	outDir := filepath.Join(submissionsDir, textDir)
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	txtPath := filepath.Join(outDir, base+".txt")

	if fi, err := os.Stat(txtPath); err == nil && fi.Size() > 0 {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return types.ConversionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	text, err := c.Convert(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// ConvertBatch processes a list of PDF paths through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, pdfPaths []string, submissionsDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ConvertSubmission(c, p, submissionsDir, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ListPDFs returns the paths of the PDF files under the submissions pdf/
// directory, in name order. The extension match is case-insensitive.
func ListPDFs(submissionsDir string) ([]string, error) {
	dir := filepath.Join(submissionsDir, pdfDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading submissions directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
