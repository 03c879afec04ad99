package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

func TestParseSubmission(t *testing.T) {
	markers := DefaultMarkers()

	tests := []struct {
		name         string
		lines        []string
		wantTitle    string
		wantAbstract string
	}{
		{
			name: "well-formed submission",
			lines: []string{
				"Conference Submission Form",
				"",
				"Title: Bayesian Networks in Production",
				"",
				"Abstract: We describe a deployment.",
				"It scaled.",
				"",
				"Keywords: bayes, networks",
			},
			wantTitle:    "Bayesian Networks in Production",
			wantAbstract: "We describe a deployment.\nIt scaled.",
		},
		{
			name: "markers indented by layout mode",
			lines: []string{
				"    Title: Deep Learning for Ecologists",
				"    Abstract: Convolutional methods applied to field data.",
			},
			wantTitle:    "Deep Learning for Ecologists",
			wantAbstract: "Convolutional methods applied to field data.",
		},
		{
			name: "title wraps onto a second line",
			lines: []string{
				"Title: A Very Long Submission",
				"Name That Wrapped",
				"Abstract: Body.",
			},
			wantTitle:    "A Very Long Submission Name That Wrapped",
			wantAbstract: "Body.",
		},
		{
			name: "abstract runs to end of input",
			lines: []string{
				"Title: Short One",
				"Abstract: First line.",
				"Second line.",
			},
			wantTitle:    "Short One",
			wantAbstract: "First line.\nSecond line.",
		},
		{
			name: "terminator ends the abstract",
			lines: []string{
				"Title: Short One",
				"Abstract: Only this.",
				"Authors: A. Person",
				"Trailing form text.",
			},
			wantTitle:    "Short One",
			wantAbstract: "Only this.",
		},
		{
			name: "missing abstract marker",
			lines: []string{
				"Title: Lonely Title",
				"Some body text without its marker.",
			},
			wantTitle:    "Lonely Title",
			wantAbstract: "",
		},
		{
			name: "missing title marker",
			lines: []string{
				"Abstract: An orphaned abstract.",
			},
			wantTitle:    "",
			wantAbstract: "An orphaned abstract.",
		},
		{
			name: "marker present but field empty",
			lines: []string{
				"Title:",
				"Abstract: Something.",
			},
			wantTitle:    "",
			wantAbstract: "Something.",
		},
		{
			name:         "empty input",
			lines:        nil,
			wantTitle:    "",
			wantAbstract: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSubmission(tt.lines, markers)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Abstract != tt.wantAbstract {
				t.Errorf("Abstract = %q, want %q", got.Abstract, tt.wantAbstract)
			}
		})
	}
}

// A well-formed submission survives a round trip: gluing the markers back
// onto the parsed fields reproduces the source lines.
func TestParseSubmission_RoundTrip(t *testing.T) {
	title := "Profiling Long-Running Pipelines"
	abstractLines := []string{"We profile a pipeline.", "Results follow."}

	lines := []string{
		"Title: " + title,
		"Abstract: " + abstractLines[0],
		abstractLines[1],
	}

	got := ParseSubmission(lines, DefaultMarkers())

	if rebuilt := "Title: " + got.Title; rebuilt != lines[0] {
		t.Errorf("rebuilt title line = %q, want %q", rebuilt, lines[0])
	}
	gotAbstract := strings.Split(got.Abstract, "\n")
	if rebuilt := "Abstract: " + gotAbstract[0]; rebuilt != lines[1] {
		t.Errorf("rebuilt abstract line = %q, want %q", rebuilt, lines[1])
	}
	if len(gotAbstract) != 2 || gotAbstract[1] != lines[2] {
		t.Errorf("abstract continuation = %q, want %q", got.Abstract, strings.Join(abstractLines, "\n"))
	}
}

func TestTitleKey(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "truncated to 15 runes", title: "Visualizing Cancer Genomics", want: "visualizing can"},
		{name: "punctuation stripped before truncation", title: "R: The Good Parts!", want: "r the good part"},
		{name: "shorter titles kept whole", title: "Shiny Apps", want: "shiny apps"},
		{name: "whitespace collapsed", title: "  Tidy\t Data   Tools ", want: "tidy data tools"},
		{name: "truncation boundary on a space", title: "Data and Rocks Again", want: "data and rocks"},
		{name: "multibyte runes counted as one", title: "Čísla a Grafy", want: "čísla a grafy"},
		{name: "empty title", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleKey(tt.title); got != tt.want {
				t.Errorf("TitleKey(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestTitleKey_MaxLength(t *testing.T) {
	long := strings.Repeat("word ", 20)
	if got := TitleKey(long); len([]rune(got)) > titleKeyLen {
		t.Errorf("key %q longer than %d runes", got, titleKeyLen)
	}
}

func TestLoadMarkers(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "markers.yaml")
	content := `version: "2"
title: "Paper Title:"
abstract: "Summary:"
terminators:
  - "Presenter:"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMarkers(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Version != "2" {
		t.Errorf("Version = %q, want %q", m.Version, "2")
	}
	if m.Title != "Paper Title:" || m.Abstract != "Summary:" {
		t.Errorf("field markers = %q/%q, want %q/%q", m.Title, m.Abstract, "Paper Title:", "Summary:")
	}
	if len(m.Terminators) != 1 || m.Terminators[0] != "Presenter:" {
		t.Errorf("Terminators = %v, want [Presenter:]", m.Terminators)
	}
}

func TestLoadMarkers_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "missing title marker",
			content: "version: \"1\"\nabstract: \"Abstract:\"\n",
			wantMsg: "missing title marker",
		},
		{
			name:    "missing version",
			content: "title: \"Title:\"\nabstract: \"Abstract:\"\n",
			wantMsg: "missing version",
		},
		{
			name:    "not yaml",
			content: "{{{",
			wantMsg: "parsing marker set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadMarkers(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}

	if _, err := LoadMarkers(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// writeText creates a text file under dir/text/, backdated so freshness
// comparisons against records written afterwards behave deterministically.
func writeText(t *testing.T, dir, stem, content string) {
	t.Helper()
	txtDir := filepath.Join(dir, "text")
	if err := os.MkdirAll(txtDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(txtDir, stem+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}
}

func TestExtractAll(t *testing.T) {
	dir := t.TempDir()

	writeText(t, dir, "a", "Title: Paper A\nAbstract: Body of A.\n")
	writeText(t, dir, "b", "Title: Paper B\nNo abstract marker here.\n")
	writeText(t, dir, "c", "Title: Paper C\nAbstract: Body of C.\n")

	// Pre-existing record newer than c.txt triggers a skip.
	recDir := filepath.Join(dir, "records")
	if err := os.MkdirAll(recDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(recDir, "c.yaml"), []byte("submission: c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.ExtractionConfig{SubmissionsDir: dir}
	var log bytes.Buffer

	summary, err := ExtractAll(DefaultMarkers(), cfg, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Extracted != 2 {
		t.Errorf("extracted = %d, want 2", summary.Extracted)
	}
	if summary.Incomplete != 1 {
		t.Errorf("incomplete = %d, want 1", summary.Incomplete)
	}
	if summary.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", summary.Skipped)
	}
	if summary.Failed != 0 {
		t.Errorf("failed = %d, want 0", summary.Failed)
	}
	if summary.Total() != 3 {
		t.Errorf("total = %d, want 3", summary.Total())
	}

	output := log.String()
	for _, want := range []string{"extracted a", "extracted b (incomplete)", "skipped c"} {
		if !strings.Contains(output, want) {
			t.Errorf("log %q does not contain %q", output, want)
		}
	}

	data, err := os.ReadFile(filepath.Join(recDir, "a.yaml"))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	var rec types.AbstractRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshaling record: %v", err)
	}
	if rec.Submission != "a" || rec.Title != "Paper A" || rec.Abstract != "Body of A." {
		t.Errorf("record = %+v, want fields of paper A", rec)
	}
	if rec.TitleKey != TitleKey("Paper A") {
		t.Errorf("TitleKey = %q, want %q", rec.TitleKey, TitleKey("Paper A"))
	}
	if !rec.Complete() {
		t.Error("record for a should be complete")
	}
}
