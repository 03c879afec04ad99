// Package extract locates marker-delimited fields within converted
// submission text and writes one structured record per submission.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

const (
	textDir    = "text"
	recordsDir = "records"
)

// titleKeyLen is the rune length title join keys are truncated to.
const titleKeyLen = 15

// Fields holds the marker-delimited values located in one converted file.
type Fields struct {
	Title    string
	Abstract string
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted  int
	Incomplete int // subset of Extracted with a missing field
	Skipped    int
	Failed     int
}

// Total returns the number of submissions processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Skipped + s.Failed
}

// HasFailures reports whether any submissions failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ExtractAll parses every converted text file under submissionsDir/text/ and
// writes one record YAML per submission under submissionsDir/records/. Files
// whose record is newer than the text are skipped; changed ones are reparsed.
func ExtractAll(markers MarkerSet, cfg types.ExtractionConfig, w io.Writer) (BatchSummary, error) {
	txtDir := filepath.Join(cfg.SubmissionsDir, textDir)
	outDir := filepath.Join(cfg.SubmissionsDir, recordsDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating records directory: %w", err)
	}

	entries, err := os.ReadDir(txtDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading text directory %s: %w", txtDir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ".txt")
		txtPath := filepath.Join(txtDir, entry.Name())
		outPath := filepath.Join(outDir, stem+".yaml")

		changed, err := hasChanged(txtPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", stem, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", stem)
			summary.Skipped++
			continue
		}

		record, err := ExtractSubmission(markers, stem, txtPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", stem, err)
			summary.Failed++
			continue
		}

		if err := writeRecord(outPath, record); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", stem, err)
			summary.Failed++
			continue
		}

		if record.Complete() {
			fmt.Fprintf(w, "extracted %s\n", stem)
		} else {
			fmt.Fprintf(w, "extracted %s (incomplete)\n", stem)
			summary.Incomplete++
		}
		summary.Extracted++
	}

	return summary, nil
}

// ExtractSubmission parses a single converted text file into a record. A
// missing marker leaves the corresponding field empty; the record is still
// returned so the join stage can account for the drop.
func ExtractSubmission(markers MarkerSet, stem, txtPath string) (types.AbstractRecord, error) {
	content, err := os.ReadFile(txtPath)
	if err != nil {
		return types.AbstractRecord{}, fmt.Errorf("reading text %s: %w", txtPath, err)
	}

	fields := ParseSubmission(strings.Split(string(content), "\n"), markers)

	return types.AbstractRecord{
		Submission: stem,
		Title:      fields.Title,
		TitleKey:   TitleKey(fields.Title),
		Abstract:   fields.Abstract,
	}, nil
}

// ParseSubmission scans the ordered lines of a converted submission for the
// marker vocabulary. Each field is the text following its marker, up to the
// next line containing any known marker or the end of input. Title whitespace
// is collapsed; abstract line structure is preserved.
func ParseSubmission(lines []string, markers MarkerSet) Fields {
	return Fields{
		Title:    strings.Join(strings.Fields(captureAfter(lines, markers.Title, markers)), " "),
		Abstract: strings.TrimSpace(captureAfter(lines, markers.Abstract, markers)),
	}
}

// captureAfter returns the text following the first occurrence of marker:
// the remainder of the marker line, then subsequent lines until another
// marker line. Returns "" when the marker does not occur.
func captureAfter(lines []string, marker string, markers MarkerSet) string {
	if marker == "" {
		return ""
	}

	start := -1
	var captured []string
	for i, line := range lines {
		if idx := strings.Index(line, marker); idx >= 0 {
			captured = append(captured, trimLine(line[idx+len(marker):]))
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	for _, line := range lines[start:] {
		if markers.isMarkerLine(line) {
			break
		}
		captured = append(captured, trimLine(line))
	}
	return strings.Join(captured, "\n")
}

// trimLine drops trailing carriage returns and padding that layout-mode
// conversion leaves on line ends.
func trimLine(line string) string {
	return strings.TrimRight(line, " \t\r")
}

// TitleKey returns the join key for a title: lowercased, stripped to letters,
// digits, and spaces, whitespace collapsed, then truncated to 15 runes. Both
// extracted records and acceptance rows derive their keys here, so the two
// sides of the join can never disagree on normalization.
func TitleKey(title string) string {
	norm := normalizeTitle(title)
	runes := []rune(norm)
	if len(runes) > titleKeyLen {
		runes = runes[:titleKeyLen]
	}
	return strings.TrimSpace(string(runes))
}

// normalizeTitle lowercases the title, strips punctuation, and collapses
// whitespace runs to single spaces.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// hasChanged reports whether the text file is newer than the record file.
// Returns true if the record does not exist yet.
func hasChanged(txtPath, outPath string) (bool, error) {
	txtInfo, err := os.Stat(txtPath)
	if err != nil {
		return false, fmt.Errorf("stat text %s: %w", txtPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat record %s: %w", outPath, err)
	}

	return txtInfo.ModTime().After(outInfo.ModTime()), nil
}

// writeRecord marshals the record to a YAML file.
func writeRecord(path string, record types.AbstractRecord) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
