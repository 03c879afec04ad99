// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/abstract-insight/internal/tool"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

// fakeConverter implements Converter for testing. It returns canned text or
// an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
}

func (f *fakeConverter) Convert(pdfPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// setupPDF creates a temporary PDF file and returns its path and the temp dir.
func setupPDF(t *testing.T) (pdfPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	inDir := filepath.Join(tmpDir, "pdf")
	if err := os.MkdirAll(inDir, 0o755); err != nil {
		t.Fatal(err)
	}
	pdfPath = filepath.Join(inDir, "submission-017.pdf")
	if err := os.WriteFile(pdfPath, []byte("fake pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return pdfPath, tmpDir
}

func TestConvertSubmission(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		preCreate  string // content of a pre-existing output file, "" for none
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			converter:  &fakeConverter{output: "Title: A Study\n\nAbstract: Words.\n"},
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing text",
			converter:  &fakeConverter{output: "should not be written"},
			preCreate:  "existing text",
			wantStatus: types.ConversionNone,
			wantLog:    "skipped:",
		},
		{
			name:       "empty existing file is reconverted",
			converter:  &fakeConverter{output: "Title: A Study\n"},
			preCreate:  "",
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "conversion failure",
			converter:  &fakeConverter{err: errors.New("tool crashed")},
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, tmpDir := setupPDF(t)

			if tt.wantLog == "skipped:" || tt.name == "empty existing file is reconverted" {
				outDir := filepath.Join(tmpDir, "text")
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(outDir, "submission-017.txt"), []byte(tt.preCreate), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertSubmission(tt.converter, pdfPath, tmpDir, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertSubmission_WritesText(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	conv := &fakeConverter{output: "Title: A Study of Things\n\nAbstract: Some words.\n"}

	var log bytes.Buffer
	status := ConvertSubmission(conv, pdfPath, tmpDir, &log)
	if status != types.ConversionDone {
		t.Fatalf("expected ConversionDone, got %q", status)
	}

	txtPath := filepath.Join(tmpDir, "text", "submission-017.txt")
	data, err := os.ReadFile(txtPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != conv.output {
		t.Errorf("output file holds %q, want the converter output verbatim", string(data))
	}
}

func TestConvertBatch(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "pdf")
	if err := os.MkdirAll(inDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Three PDFs: one succeeds, one is pre-existing, one fails.
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if err := os.WriteFile(filepath.Join(inDir, name), []byte("pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	outDir := filepath.Join(tmpDir, "text")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "b.txt"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := &selectiveConverter{
		outputs: map[string]string{
			filepath.Join(inDir, "a.pdf"): "Title: Paper A",
			filepath.Join(inDir, "b.pdf"): "Title: Paper B",
		},
		errors: map[string]error{
			filepath.Join(inDir, "c.pdf"): errors.New("bad pdf"),
		},
	}

	paths := []string{
		filepath.Join(inDir, "a.pdf"),
		filepath.Join(inDir, "b.pdf"),
		filepath.Join(inDir, "c.pdf"),
	}

	var log bytes.Buffer
	result := ConvertBatch(conv, paths, tmpDir, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}

	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain summary line")
	}
}

func TestListPDFs(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "pdf")
	if err := os.MkdirAll(filepath.Join(inDir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(inDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := ListPDFs(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(inDir, "a.PDF"),
		filepath.Join(inDir, "b.pdf"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListPDFs_MissingDir(t *testing.T) {
	if _, err := ListPDFs(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// fakeRunner implements tool.Runner for backend selection tests.
type fakeRunner struct{}

func (fakeRunner) Name() string                            { return "pdftotext" }
func (fakeRunner) Available() bool                         { return true }
func (fakeRunner) Extract(pdfPath string, out io.Writer) error { return nil }

func TestSelectConverter(t *testing.T) {
	restore := detectTool
	defer func() { detectTool = restore }()

	tests := []struct {
		name        string
		backend     types.ConversionBackend
		toolPresent bool
		wantBackend types.ConversionBackend
		wantErr     bool
	}{
		{name: "auto prefers pdftotext", backend: types.BackendAuto, toolPresent: true, wantBackend: types.BackendPdftotext},
		{name: "auto falls back to builtin", backend: types.BackendAuto, toolPresent: false, wantBackend: types.BackendBuiltin},
		{name: "empty backend behaves like auto", backend: "", toolPresent: false, wantBackend: types.BackendBuiltin},
		{name: "explicit pdftotext requires the tool", backend: types.BackendPdftotext, toolPresent: false, wantErr: true},
		{name: "explicit builtin never probes", backend: types.BackendBuiltin, toolPresent: false, wantBackend: types.BackendBuiltin},
		{name: "unknown backend", backend: "grobid", toolPresent: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detectTool = func() (tool.Runner, error) {
				if tt.toolPresent {
					return fakeRunner{}, nil
				}
				return nil, errors.New("no conversion tool available")
			}

			_, chosen, err := SelectConverter(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if chosen != tt.wantBackend {
				t.Errorf("chosen backend = %q, want %q", chosen, tt.wantBackend)
			}
		})
	}
}

// selectiveConverter returns different results per file path.
type selectiveConverter struct {
	outputs map[string]string
	errors  map[string]error
}

func (s *selectiveConverter) Convert(pdfPath string) (string, error) {
	if err, ok := s.errors[pdfPath]; ok {
		return "", err
	}
	if out, ok := s.outputs[pdfPath]; ok {
		return out, nil
	}
	return "", errors.New("unexpected path: " + pdfPath)
}
