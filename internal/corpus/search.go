// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

// QueryOptions holds parameters for corpus queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string, matched against titles
	// and abstract bodies.
	Query string

	// Accepted filters by outcome when non-empty.
	Accepted types.Outcome

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Accepted == ""
}

// QueryResult is a joined abstract returned from a corpus query.
type QueryResult struct {
	types.JoinedAbstract
}

// Search queries the corpus with optional full-text search and an
// outcome filter. Results are ranked by relevance for full-text queries
// or sorted by submission for filter-only queries.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.id, a.submission, a.title, a.title_key, a.abstract, a.accepted,
				abstracts_fts.rank
			FROM abstracts_fts
			JOIN abstracts a ON a.id = abstracts_fts.rowid
			WHERE abstracts_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.id, a.submission, a.title, a.title_key, a.abstract, a.accepted,
				0 AS rank
			FROM abstracts a
			WHERE 1=1`)
	}

	if opts.Accepted != "" {
		qb.WriteString(` AND a.accepted = ?`)
		args = append(args, string(opts.Accepted))
	}

	if useFTS {
		qb.WriteString(` ORDER BY abstracts_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.submission`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr       QueryResult
			accepted string
			rank     float64
		)

		if err := rows.Scan(
			&qr.ID, &qr.Submission, &qr.Title, &qr.TitleKey, &qr.Abstract,
			&accepted, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Accepted = types.Outcome(accepted)
		results = append(results, qr)
	}

	return results, rows.Err()
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []QueryResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-8s  %s\n", "ID", "Submission", "Outcome", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, r := range results {
		fmt.Fprintf(w, "%-4d  %-16s  %-8s  %s\n",
			r.ID, truncate(r.Submission, 16), r.Accepted.Label(), truncate(r.Title, 64))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []QueryResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
