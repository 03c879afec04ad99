// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool implements detection and execution of the external
// PDF-to-text utility used by the conversion stage.
package tool

import (
	"fmt"
	"io"
	"os/exec"
)

const binPdftotext = "pdftotext"

// Runner provides external tool operations: checking availability and
// extracting the text of a single PDF.
type Runner interface {
	// Name returns the tool binary name ("pdftotext").
	Name() string

	// Available reports whether the tool binary exists on PATH and responds
	// to a version probe.
	Available() bool

	// Extract runs the tool on pdfPath and writes the extracted text to out.
	Extract(pdfPath string, out io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// runner implements Runner for a specific binary. The extract arguments keep
// layout mode on so field-marker lines survive conversion intact.
type runner struct {
	bin         string
	probeArgs   []string
	extractArgs []string // flags inserted before "<pdf> -"
	exec        executor
}

func (r *runner) Name() string { return r.bin }

func (r *runner) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, r.probeArgs...) == nil
}

func (r *runner) Extract(pdfPath string, out io.Writer) error {
	args := make([]string, 0, len(r.extractArgs)+2)
	args = append(args, r.extractArgs...)
	args = append(args, pdfPath, "-")

	if err := r.exec.RunPiped(r.bin, args, nil, out); err != nil {
		return fmt.Errorf("running %s on %s: %w", r.bin, pdfPath, err)
	}
	return nil
}

func newPdftotextRunner(exec executor) *runner {
	return &runner{
		bin:         binPdftotext,
		probeArgs:   []string{"-v"},
		extractArgs: []string{"-layout", "-enc", "UTF-8"},
		exec:        exec,
	}
}

var defaultExec = &osExecutor{}

// Detect returns the pdftotext runner when the binary is installed and
// operational. Callers fall back to the built-in extractor otherwise.
func Detect() (Runner, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Runner, error) {
	pt := newPdftotextRunner(exec)
	if pt.Available() {
		return pt, nil
	}
	return nil, fmt.Errorf(
		"no conversion tool available: %s not found or not operational", binPdftotext,
	)
}
