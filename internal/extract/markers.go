// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// MarkerSet is the versioned vocabulary of field markers the extractor scans
// for. The submission form and this tool agree on the vocabulary as a parsing
// contract: when the form changes its field labels, a new marker-set file
// with a bumped version ships alongside it instead of a code change.
type MarkerSet struct {
	// Version identifies the vocabulary revision records were parsed with.
	Version string `json:"version" yaml:"version"`

	// Title is the marker preceding the submission title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the marker preceding the abstract body.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Terminators lists the remaining form-field markers. They end a capture
	// without being captured themselves.
	Terminators []string `json:"terminators" yaml:"terminators"`
}

// DefaultMarkers returns the built-in vocabulary matching the current
// submission form.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		Version:  "1",
		Title:    "Title:",
		Abstract: "Abstract:",
		Terminators: []string{
			"Author:",
			"Authors:",
			"Keywords:",
			"Session:",
		},
	}
}

// LoadMarkers reads and validates a marker-set YAML file.
func LoadMarkers(path string) (MarkerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MarkerSet{}, fmt.Errorf("reading marker set %s: %w", path, err)
	}

	var m MarkerSet
	if err := yaml.Unmarshal(data, &m); err != nil {
		return MarkerSet{}, fmt.Errorf("parsing marker set %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return MarkerSet{}, fmt.Errorf("marker set %s: %w", path, err)
	}
	return m, nil
}

// Validate checks that the vocabulary is usable for parsing.
func (m MarkerSet) Validate() error {
	var problems []string
	if m.Version == "" {
		problems = append(problems, "missing version")
	}
	if m.Title == "" {
		problems = append(problems, "missing title marker")
	}
	if m.Abstract == "" {
		problems = append(problems, "missing abstract marker")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// All returns every marker in the vocabulary: the two field markers followed
// by the terminators.
func (m MarkerSet) All() []string {
	all := make([]string, 0, len(m.Terminators)+2)
	all = append(all, m.Title, m.Abstract)
	all = append(all, m.Terminators...)
	return all
}

// isMarkerLine reports whether the line contains any marker from the
// vocabulary. Converted text keeps layout indentation, so markers are matched
// anywhere in the line rather than as prefixes.
func (m MarkerSet) isMarkerLine(line string) bool {
	for _, marker := range m.All() {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
