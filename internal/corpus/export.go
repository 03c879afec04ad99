// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

// ExportEntry holds one joined abstract with its kept words for export.
type ExportEntry struct {
	ID         int      `json:"id" yaml:"id"`
	Submission string   `json:"submission" yaml:"submission"`
	Title      string   `json:"title" yaml:"title"`
	TitleKey   string   `json:"title_key" yaml:"title_key"`
	Accepted   string   `json:"accepted" yaml:"accepted"`
	Abstract   string   `json:"abstract" yaml:"abstract"`
	Words      []string `json:"words,omitempty" yaml:"words,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes the corpus to corpusDir/export.yaml. It supports
// the same filters as Search.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.corpusDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the corpus to corpusDir/export.json. It supports
// the same filters as Search.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.corpusDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportParquet writes the derived statistics tables to
// corpusDir/word_frequencies.parquet and corpusDir/word_tfidf.parquet.
func (s *Store) ExportParquet(ctx context.Context) error {
	frequencies, err := s.Frequencies(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	weights, err := s.TfIdf(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	freqPath := filepath.Join(s.corpusDir, "word_frequencies.parquet")
	if err := writeParquet(freqPath, frequencies); err != nil {
		return err
	}

	tfidfPath := filepath.Join(s.corpusDir, "word_tfidf.parquet")
	return writeParquet(tfidfPath, weights)
}

func writeParquet[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return f.Close()
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	words, err := s.wordsByAbstract(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			ID:         r.ID,
			Submission: r.Submission,
			Title:      r.Title,
			TitleKey:   r.TitleKey,
			Accepted:   string(r.Accepted),
			Abstract:   r.Abstract,
			Words:      words[r.ID],
		}
	}

	return entries, nil
}

func (s *Store) wordsByAbstract(ctx context.Context) (map[int][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT abstract_id, word FROM tokens ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying tokens: %w", err)
	}
	defer rows.Close()

	words := make(map[int][]string)
	for rows.Next() {
		var (
			id   int
			word string
		)
		if err := rows.Scan(&id, &word); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		words[id] = append(words[id], word)
	}

	return words, rows.Err()
}
