// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes the corpus aggregates behind the report views:
// abstract lengths, per-category word frequencies, TF-IDF weights with the
// category as the document unit, and keyword phrases. Everything is
// recomputed from the full token table; nothing here is incremental.
package stats

import (
	"math"
	"sort"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

// Frequencies counts word occurrences per category. Rows come back sorted by
// category, then count descending, then word, so reruns over the same corpus
// produce identical output.
func Frequencies(tokens []types.CategoryToken) []types.FrequencyRow {
	type key struct{ category, word string }
	counts := map[key]int{}
	for _, t := range tokens {
		counts[key{t.Category, t.Word}]++
	}

	rows := make([]types.FrequencyRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, types.FrequencyRow{Category: k.category, Word: k.word, N: n})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if rows[i].N != rows[j].N {
			return rows[i].N > rows[j].N
		}
		return rows[i].Word < rows[j].Word
	})
	return rows
}

// TopFrequencies keeps the first n rows of each category. Input must be
// sorted the way Frequencies sorts.
func TopFrequencies(rows []types.FrequencyRow, n int) []types.FrequencyRow {
	var (
		out      []types.FrequencyRow
		category string
		kept     int
	)
	for _, r := range rows {
		if r.Category != category {
			category = r.Category
			kept = 0
		}
		if kept < n {
			out = append(out, r)
			kept++
		}
	}
	return out
}

// TfIdf weighs each (category, word) pair: tf is the word's share of all
// word occurrences in its category, idf is ln(#categories / #categories
// containing the word). A word present in every category scores exactly
// zero; no weight is ever negative. Rows come back sorted by category, then
// weight descending, then word.
func TfIdf(rows []types.FrequencyRow) []types.TfIdfRow {
	totals := map[string]int{}
	docFreq := map[string]int{}
	for _, r := range rows {
		totals[r.Category] += r.N
		docFreq[r.Word]++
	}
	numCategories := len(totals)

	out := make([]types.TfIdfRow, 0, len(rows))
	for _, r := range rows {
		tf := float64(r.N) / float64(totals[r.Category])
		idf := math.Log(float64(numCategories) / float64(docFreq[r.Word]))
		out = append(out, types.TfIdfRow{
			Category: r.Category,
			Word:     r.Word,
			N:        r.N,
			Tf:       tf,
			Idf:      idf,
			TfIdf:    tf * idf,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].TfIdf != out[j].TfIdf {
			return out[i].TfIdf > out[j].TfIdf
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// TopTfIdf keeps the first n rows of each category. Input must be sorted the
// way TfIdf sorts.
func TopTfIdf(rows []types.TfIdfRow, n int) []types.TfIdfRow {
	var (
		out      []types.TfIdfRow
		category string
		kept     int
	)
	for _, r := range rows {
		if r.Category != category {
			category = r.Category
			kept = 0
		}
		if kept < n {
			out = append(out, r)
			kept++
		}
	}
	return out
}

// Lengths counts kept tokens per abstract, sorted by abstract ID. Abstracts
// whose every token was filtered out do not appear; the corpus query feeding
// this only knows about surviving tokens.
func Lengths(tokens []types.CategoryToken) []types.AbstractLength {
	counts := map[int]*types.AbstractLength{}
	for _, t := range tokens {
		if l, ok := counts[t.AbstractID]; ok {
			l.Words++
			continue
		}
		counts[t.AbstractID] = &types.AbstractLength{AbstractID: t.AbstractID, Category: t.Category, Words: 1}
	}

	out := make([]types.AbstractLength, 0, len(counts))
	for _, l := range counts {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AbstractID < out[j].AbstractID })
	return out
}

// Categories returns the sorted distinct categories in the length rows.
func Categories(lengths []types.AbstractLength) []string {
	seen := map[string]bool{}
	var cats []string
	for _, l := range lengths {
		if !seen[l.Category] {
			seen[l.Category] = true
			cats = append(cats, l.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
