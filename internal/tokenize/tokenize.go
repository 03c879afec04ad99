// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokenize turns abstract text into cleaned word tokens: lowercased,
// stripped of stop words and pure numbers, with no stemming applied.
package tokenize

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v3"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

// hyphenRepair rejoins words the converter broke across line ends.
var hyphenRepair = strings.NewReplacer("-\n", "")

// Tokenizer applies the cleaning filters after word splitting.
type Tokenizer struct {
	stop map[string]bool
	keep map[string]bool
}

// Drops counts the tokens removed by each cleaning filter.
type Drops struct {
	StopWords int
	Numerics  int
}

// Summary holds counts from tokenizing a whole corpus.
type Summary struct {
	Abstracts int
	Tokens    int
	StopWords int
	Numerics  int
}

// New returns a tokenizer with the given stop and keep lists. A nil
// stopWords slice selects the built-in English list; a nil keepWords slice
// keeps "r".
func New(stopWords, keepWords []string) *Tokenizer {
	if stopWords == nil {
		stopWords = defaultStopWords()
	}
	if keepWords == nil {
		keepWords = defaultKeepWords()
	}

	t := &Tokenizer{
		stop: make(map[string]bool, len(stopWords)),
		keep: make(map[string]bool, len(keepWords)),
	}
	for _, w := range stopWords {
		t.stop[strings.ToLower(w)] = true
	}
	for _, w := range keepWords {
		t.keep[strings.ToLower(w)] = true
	}
	return t
}

// Words splits text into word tokens and applies the filters in order:
// surrounding punctuation is trimmed, empty remainders vanish, keep-list
// words always survive, stop words and full-numeric tokens are dropped.
func (t *Tokenizer) Words(text string) ([]string, Drops, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingTokenizer(prose.NewIterTokenizer(prose.UsingSanitizer(hyphenRepair))))
	if err != nil {
		return nil, Drops{}, fmt.Errorf("splitting text: %w", err)
	}

	var (
		words []string
		drops Drops
	)
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(strings.TrimFunc(tok.Text, unicode.IsPunct))
		if word == "" {
			continue
		}
		if t.keep[word] {
			words = append(words, word)
			continue
		}
		if t.stop[word] {
			drops.StopWords++
			continue
		}
		if isNumeric(word) {
			drops.Numerics++
			continue
		}
		words = append(words, word)
	}
	return words, drops, nil
}

// isNumeric reports whether the whole token parses as a number.
func isNumeric(word string) bool {
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}

// LoadStopWords reads a custom stop-word list: one word per line, blank
// lines and #-comments ignored.
func LoadStopWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stop-word list %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stop-word list %s: %w", path, err)
	}
	return words, nil
}

// Corpus is the slice of the store the tokenize stage needs.
type Corpus interface {
	Abstracts(ctx context.Context) ([]types.JoinedAbstract, error)
	ReplaceTokens(ctx context.Context, tokens []types.Token) error
}

// Run tokenizes every joined abstract in the corpus and replaces the token
// table wholesale, printing a per-abstract line to w.
func Run(ctx context.Context, c Corpus, tk *Tokenizer, w io.Writer) (Summary, error) {
	abstracts, err := c.Abstracts(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading abstracts: %w", err)
	}

	var (
		all     []types.Token
		summary Summary
	)
	for _, a := range abstracts {
		words, drops, err := tk.Words(a.Abstract)
		if err != nil {
			return Summary{}, fmt.Errorf("tokenizing %s: %w", a.Submission, err)
		}

		for _, word := range words {
			all = append(all, types.Token{AbstractID: a.ID, Word: word})
		}

		summary.Abstracts++
		summary.Tokens += len(words)
		summary.StopWords += drops.StopWords
		summary.Numerics += drops.Numerics
		fmt.Fprintf(w, "tokenized %s (%d words kept)\n", a.Submission, len(words))
	}

	if err := c.ReplaceTokens(ctx, all); err != nil {
		return Summary{}, fmt.Errorf("storing tokens: %w", err)
	}
	return summary, nil
}
