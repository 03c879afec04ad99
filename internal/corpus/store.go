// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists joined abstracts, their tokens, and derived
// word statistics in a SQLite database with full-text search over
// titles and abstract bodies.
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

const dbFile = "corpus.db"

// Store manages the corpus SQLite database.
type Store struct {
	db         *sql.DB
	corpusDir  string
	maxResults int
}

// NewStore opens or creates the corpus database at corpusDir/corpus.db.
// It creates the schema if it does not exist.
func NewStore(corpusDir string) (*Store, error) {
	if err := os.MkdirAll(corpusDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating corpus directory: %w", err)
	}

	dbPath := filepath.Join(corpusDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:         db,
		corpusDir:  corpusDir,
		maxResults: 20,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS abstracts (
			id INTEGER PRIMARY KEY,
			submission TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			title_key TEXT NOT NULL,
			abstract TEXT NOT NULL,
			accepted TEXT NOT NULL CHECK (accepted IN ('yes', 'no'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_abstracts_accepted ON abstracts(accepted)`,
		`CREATE TABLE IF NOT EXISTS tokens (
			abstract_id INTEGER NOT NULL REFERENCES abstracts(id),
			word TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_abstract_id ON tokens(abstract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_word ON tokens(word)`,
		`CREATE TABLE IF NOT EXISTS word_frequencies (
			category TEXT NOT NULL,
			word TEXT NOT NULL,
			n INTEGER NOT NULL,
			PRIMARY KEY (category, word)
		)`,
		`CREATE TABLE IF NOT EXISTS word_tfidf (
			category TEXT NOT NULL,
			word TEXT NOT NULL,
			n INTEGER NOT NULL,
			tf REAL NOT NULL,
			idf REAL NOT NULL,
			tf_idf REAL NOT NULL,
			PRIMARY KEY (category, word)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='abstracts_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE abstracts_fts USING fts5(title, abstract, content=abstracts, content_rowid=id)`,
			`CREATE TRIGGER abstracts_ai AFTER INSERT ON abstracts BEGIN
				INSERT INTO abstracts_fts(rowid, title, abstract) VALUES (new.id, new.title, new.abstract);
			END`,
			`CREATE TRIGGER abstracts_ad AFTER DELETE ON abstracts BEGIN
				INSERT INTO abstracts_fts(abstracts_fts, rowid, title, abstract) VALUES('delete', old.id, old.title, old.abstract);
			END`,
			`CREATE TRIGGER abstracts_au AFTER UPDATE ON abstracts BEGIN
				INSERT INTO abstracts_fts(abstracts_fts, rowid, title, abstract) VALUES('delete', old.id, old.title, old.abstract);
				INSERT INTO abstracts_fts(rowid, title, abstract) VALUES (new.id, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// ReplaceAbstracts rebuilds the abstracts table from a fresh join run.
// Tokens and derived statistics are cleared too, since they describe the
// corpus being replaced.
func (s *Store) ReplaceAbstracts(ctx context.Context, joined []types.JoinedAbstract) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM tokens`,
		`DELETE FROM word_frequencies`,
		`DELETE FROM word_tfidf`,
		`DELETE FROM abstracts`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing old corpus: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO abstracts (id, submission, title, title_key, abstract, accepted)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range joined {
		_, err := stmt.ExecContext(ctx,
			a.ID, a.Submission, a.Title, a.TitleKey, a.Abstract, string(a.Accepted),
		)
		if err != nil {
			return fmt.Errorf("inserting abstract %s: %w", a.Submission, err)
		}
	}

	return tx.Commit()
}

// ReplaceTokens rebuilds the tokens table from a fresh tokenize run,
// preserving the order tokens appear in.
func (s *Store) ReplaceTokens(ctx context.Context, tokens []types.Token) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tokens`); err != nil {
		return fmt.Errorf("clearing old tokens: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tokens (abstract_id, word) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tokens {
		if _, err := stmt.ExecContext(ctx, t.AbstractID, t.Word); err != nil {
			return fmt.Errorf("inserting token for abstract %d: %w", t.AbstractID, err)
		}
	}

	return tx.Commit()
}

// Abstracts returns all joined abstracts ordered by id.
func (s *Store) Abstracts(ctx context.Context) ([]types.JoinedAbstract, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, submission, title, title_key, abstract, accepted
		 FROM abstracts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying abstracts: %w", err)
	}
	defer rows.Close()

	var abstracts []types.JoinedAbstract
	for rows.Next() {
		var (
			a        types.JoinedAbstract
			accepted string
		)
		if err := rows.Scan(&a.ID, &a.Submission, &a.Title, &a.TitleKey, &a.Abstract, &accepted); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		a.Accepted = types.Outcome(accepted)
		abstracts = append(abstracts, a)
	}

	return abstracts, rows.Err()
}

// CategoryTokens returns every token labeled with its abstract's outcome,
// in insertion order.
func (s *Store) CategoryTokens(ctx context.Context) ([]types.CategoryToken, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.abstract_id, a.accepted, t.word
		 FROM tokens t
		 JOIN abstracts a ON a.id = t.abstract_id
		 ORDER BY t.rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying tokens: %w", err)
	}
	defer rows.Close()

	var tokens []types.CategoryToken
	for rows.Next() {
		var t types.CategoryToken
		if err := rows.Scan(&t.AbstractID, &t.Category, &t.Word); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}

// SaveFrequencies replaces the word_frequencies table.
func (s *Store) SaveFrequencies(ctx context.Context, rows []types.FrequencyRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_frequencies`); err != nil {
		return fmt.Errorf("clearing old frequencies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO word_frequencies (category, word, n) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Category, r.Word, r.N); err != nil {
			return fmt.Errorf("inserting frequency %s/%s: %w", r.Category, r.Word, err)
		}
	}

	return tx.Commit()
}

// SaveTfIdf replaces the word_tfidf table.
func (s *Store) SaveTfIdf(ctx context.Context, rows []types.TfIdfRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_tfidf`); err != nil {
		return fmt.Errorf("clearing old weights: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO word_tfidf (category, word, n, tf, idf, tf_idf)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Category, r.Word, r.N, r.Tf, r.Idf, r.TfIdf); err != nil {
			return fmt.Errorf("inserting weight %s/%s: %w", r.Category, r.Word, err)
		}
	}

	return tx.Commit()
}

// Frequencies returns the saved per-category counts, most frequent first
// within each category.
func (s *Store) Frequencies(ctx context.Context) ([]types.FrequencyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, word, n FROM word_frequencies
		 ORDER BY category, n DESC, word`)
	if err != nil {
		return nil, fmt.Errorf("querying frequencies: %w", err)
	}
	defer rows.Close()

	var out []types.FrequencyRow
	for rows.Next() {
		var r types.FrequencyRow
		if err := rows.Scan(&r.Category, &r.Word, &r.N); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// TfIdf returns the saved per-category weights, heaviest first within
// each category.
func (s *Store) TfIdf(ctx context.Context) ([]types.TfIdfRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, word, n, tf, idf, tf_idf FROM word_tfidf
		 ORDER BY category, tf_idf DESC, word`)
	if err != nil {
		return nil, fmt.Errorf("querying weights: %w", err)
	}
	defer rows.Close()

	var out []types.TfIdfRow
	for rows.Next() {
		var r types.TfIdfRow
		if err := rows.Scan(&r.Category, &r.Word, &r.N, &r.Tf, &r.Idf, &r.TfIdf); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Counts holds corpus size figures.
type Counts struct {
	Abstracts int
	Accepted  int
	Rejected  int
	Tokens    int
}

// Counts reports the number of stored abstracts per outcome and the
// total token count.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts

	err := s.db.QueryRowContext(ctx,
		`SELECT count(*),
			count(CASE WHEN accepted = 'yes' THEN 1 END),
			count(CASE WHEN accepted = 'no' THEN 1 END)
		 FROM abstracts`,
	).Scan(&c.Abstracts, &c.Accepted, &c.Rejected)
	if err != nil {
		return Counts{}, fmt.Errorf("counting abstracts: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM tokens`).Scan(&c.Tokens); err != nil {
		return Counts{}, fmt.Errorf("counting tokens: %w", err)
	}

	return c, nil
}
