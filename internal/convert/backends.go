// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdiddy/abstract-insight/internal/pdftext"
	"github.com/pdiddy/abstract-insight/internal/tool"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

// PdftotextConverter converts PDFs by running the external pdftotext utility
// in layout mode. It depends on a tool.Runner injected at construction time.
type PdftotextConverter struct {
	runner tool.Runner
}

// NewPdftotextConverter creates a converter backed by the given tool runner.
func NewPdftotextConverter(r tool.Runner) *PdftotextConverter {
	return &PdftotextConverter{runner: r}
}

// Convert runs the tool on the PDF at pdfPath and returns the extracted text.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	var out bytes.Buffer
	if err := p.runner.Extract(pdfPath, &out); err != nil {
		return "", fmt.Errorf("converting %s with %s: %w", pdfPath, p.runner.Name(), err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", p.runner.Name(), pdfPath)
	}

	return out.String(), nil
}

// BuiltinConverter converts PDFs with the pure-Go extractor. It needs no
// external tooling but handles fewer font encodings than pdftotext.
type BuiltinConverter struct{}

// Convert extracts the text of the PDF at pdfPath in-process.
func (b *BuiltinConverter) Convert(pdfPath string) (string, error) {
	text, err := pdftext.ExtractText(pdfPath)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("built-in extractor produced empty output for %s", pdfPath)
	}

	return text, nil
}

// detectTool is swapped out in tests.
var detectTool = tool.Detect

// SelectConverter returns the converter for the requested backend. The auto
// backend prefers pdftotext and falls back to the built-in extractor when the
// tool is not installed. The returned backend names what was actually chosen.
func SelectConverter(backend types.ConversionBackend) (Converter, types.ConversionBackend, error) {
	switch backend {
	case types.BackendPdftotext:
		r, err := detectTool()
		if err != nil {
			return nil, "", err
		}
		return NewPdftotextConverter(r), types.BackendPdftotext, nil

	case types.BackendBuiltin:
		return &BuiltinConverter{}, types.BackendBuiltin, nil

	case types.BackendAuto, "":
		if r, err := detectTool(); err == nil {
			return NewPdftotextConverter(r), types.BackendPdftotext, nil
		}
		return &BuiltinConverter{}, types.BackendBuiltin, nil
	}

	return nil, "", fmt.Errorf("unknown conversion backend %q", backend)
}
