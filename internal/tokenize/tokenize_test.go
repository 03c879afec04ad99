// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

func TestWords(t *testing.T) {
	tk := New(nil, nil)

	tests := []struct {
		name          string
		text          string
		want          []string
		wantStopWords int
		wantNumerics  int
	}{
		{
			name:          "keeps r, drops stop words",
			text:          "R is great for data science and R is fun",
			want:          []string{"r", "great", "data", "science", "r", "fun"},
			wantStopWords: 4, // is, for, and, is
		},
		{
			name:         "drops numeric tokens",
			text:         "We surveyed 1200 users over 3.5 years",
			want:         []string{"surveyed", "users", "years"},
			wantNumerics: 2,
			// "we" and "over" are stop words
			wantStopWords: 2,
		},
		{
			name: "lowercases and trims punctuation",
			text: "Bayesian, methods. (Really!)",
			want: []string{"bayesian", "methods", "really"},
		},
		{
			name:          "single letters are noise except r",
			text:          "appendix b covers r packages",
			want:          []string{"appendix", "covers", "r", "packages"},
			wantStopWords: 1, // b
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, drops, err := tk.Words(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("words = %v, want %v", got, tt.want)
			}
			if drops.StopWords != tt.wantStopWords {
				t.Errorf("stop words dropped = %d, want %d", drops.StopWords, tt.wantStopWords)
			}
			if drops.Numerics != tt.wantNumerics {
				t.Errorf("numerics dropped = %d, want %d", drops.Numerics, tt.wantNumerics)
			}
		})
	}
}

// No output token is ever a stop word (keep list aside) or a number,
// whatever the input.
func TestWords_FilterProperties(t *testing.T) {
	tk := New(nil, nil)
	text := "The 42 models were trained on 3.14 datasets because the results are in R and the data is not small"

	words, _, err := tk.Words(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stop := map[string]bool{}
	for _, w := range defaultStopWords() {
		stop[w] = true
	}
	for _, w := range words {
		if w != "r" && stop[w] {
			t.Errorf("stop word %q leaked into output", w)
		}
		if isNumeric(w) {
			t.Errorf("numeric token %q leaked into output", w)
		}
	}
}

func TestWords_HyphenationRepair(t *testing.T) {
	tk := New(nil, nil)
	words, _, err := tk.Words("This was a hyphen-\nated sentence about tokenizers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(words, " ")
	if !strings.Contains(joined, "hyphenated") {
		t.Errorf("words %v should contain the repaired token %q", words, "hyphenated")
	}
	if strings.Contains(joined, "ated") && !strings.Contains(joined, "hyphenated") {
		t.Errorf("words %v still hold the broken fragment", words)
	}
}

func TestWords_CustomLists(t *testing.T) {
	tk := New([]string{"banana"}, []string{"is"})

	words, drops, err := tk.Words("banana is banana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"is"}) {
		t.Errorf("words = %v, want [is]", words)
	}
	if drops.StopWords != 2 {
		t.Errorf("stop words dropped = %d, want 2", drops.StopWords)
	}
}

func TestLoadStopWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	content := "# custom list\nthe\n\nand\n  of  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	words, err := LoadStopWords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"the", "and", "of"}) {
		t.Errorf("words = %v, want [the and of]", words)
	}

	if _, err := LoadStopWords(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// fakeCorpus implements Corpus in memory.
type fakeCorpus struct {
	abstracts []types.JoinedAbstract
	tokens    []types.Token
}

func (f *fakeCorpus) Abstracts(ctx context.Context) ([]types.JoinedAbstract, error) {
	return f.abstracts, nil
}

func (f *fakeCorpus) ReplaceTokens(ctx context.Context, tokens []types.Token) error {
	f.tokens = tokens
	return nil
}

func TestRun(t *testing.T) {
	corpus := &fakeCorpus{
		abstracts: []types.JoinedAbstract{
			{ID: 1, Submission: "sub-a", Abstract: "R is great for data science and R is fun", Accepted: types.OutcomeAccepted},
			{ID: 2, Submission: "sub-b", Abstract: "We surveyed 1200 users", Accepted: types.OutcomeRejected},
		},
	}

	var log bytes.Buffer
	summary, err := Run(context.Background(), corpus, New(nil, nil), &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Abstracts != 2 {
		t.Errorf("abstracts = %d, want 2", summary.Abstracts)
	}
	if summary.Tokens != 8 { // 6 from sub-a, 2 from sub-b
		t.Errorf("tokens = %d, want 8", summary.Tokens)
	}
	if summary.StopWords != 5 { // is, for, and, is + we
		t.Errorf("stop words = %d, want 5", summary.StopWords)
	}
	if summary.Numerics != 1 { // 1200
		t.Errorf("numerics = %d, want 1", summary.Numerics)
	}

	if len(corpus.tokens) != 8 {
		t.Fatalf("stored tokens = %d, want 8", len(corpus.tokens))
	}
	if corpus.tokens[0].AbstractID != 1 || corpus.tokens[0].Word != "r" {
		t.Errorf("first token = %+v, want {1 r}", corpus.tokens[0])
	}
	last := corpus.tokens[len(corpus.tokens)-1]
	if last.AbstractID != 2 {
		t.Errorf("last token belongs to abstract %d, want 2", last.AbstractID)
	}

	for _, want := range []string{"tokenized sub-a (6 words kept)", "tokenized sub-b (2 words kept)"} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log %q does not contain %q", log.String(), want)
		}
	}
}
