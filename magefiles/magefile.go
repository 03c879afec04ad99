// Package main contains Mage build targets for abstract-insight developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "abstract-insight"
	cmdPkg  = "./cmd/abstract-insight"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"submissions/pdf",
	"submissions/text",
	"submissions/records",
	"corpus",
	"report",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Pipeline runs every stage in order against the project directories.
func Pipeline() error {
	mg.Deps(Build)
	return bin("run")
}

// Clean removes generated pipeline output, leaving the source PDFs and
// the acceptance table in place.
func Clean() error {
	for _, dir := range []string{
		"submissions/text",
		"submissions/records",
		"corpus",
		"report",
		binDir,
	} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	fmt.Println("Cleaned generated output.")
	return nil
}

// bin invokes the built binary with the given arguments.
func bin(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
