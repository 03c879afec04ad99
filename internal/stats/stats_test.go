// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

// tok builds a CategoryToken.
func tok(id int, category, word string) types.CategoryToken {
	return types.CategoryToken{AbstractID: id, Category: category, Word: word}
}

func TestFrequencies(t *testing.T) {
	tokens := []types.CategoryToken{
		tok(1, "yes", "r"), tok(1, "yes", "shiny"), tok(1, "yes", "r"),
		tok(2, "no", "legacy"), tok(2, "no", "r"), tok(2, "no", "legacy"),
	}

	rows := Frequencies(tokens)
	require.Len(t, rows, 4)

	// Sorted by category, count desc, word asc.
	assert.Equal(t, types.FrequencyRow{Category: "no", Word: "legacy", N: 2}, rows[0])
	assert.Equal(t, types.FrequencyRow{Category: "no", Word: "r", N: 1}, rows[1])
	assert.Equal(t, types.FrequencyRow{Category: "yes", Word: "r", N: 2}, rows[2])
	assert.Equal(t, types.FrequencyRow{Category: "yes", Word: "shiny", N: 1}, rows[3])
}

func TestTopFrequencies(t *testing.T) {
	rows := []types.FrequencyRow{
		{Category: "no", Word: "legacy", N: 5},
		{Category: "no", Word: "slow", N: 2},
		{Category: "no", Word: "tired", N: 1},
		{Category: "yes", Word: "fast", N: 4},
		{Category: "yes", Word: "new", N: 4},
	}

	top := TopFrequencies(rows, 2)
	require.Len(t, top, 4)
	assert.Equal(t, "legacy", top[0].Word)
	assert.Equal(t, "slow", top[1].Word)
	assert.Equal(t, "fast", top[2].Word)
	assert.Equal(t, "new", top[3].Word)
}

func TestTfIdf(t *testing.T) {
	// yes: r r shiny (3 words); no: r legacy legacy (3 words).
	rows := []types.FrequencyRow{
		{Category: "yes", Word: "r", N: 2},
		{Category: "yes", Word: "shiny", N: 1},
		{Category: "no", Word: "r", N: 1},
		{Category: "no", Word: "legacy", N: 2},
	}

	out := TfIdf(rows)
	require.Len(t, out, 4)

	byKey := map[string]types.TfIdfRow{}
	for _, r := range out {
		byKey[r.Category+"/"+r.Word] = r
	}

	// "r" appears in both categories: idf = ln(2/2) = 0, weight exactly zero.
	assert.Zero(t, byKey["yes/r"].TfIdf)
	assert.Zero(t, byKey["no/r"].TfIdf)

	// "shiny" appears only in yes: tf = 1/3, idf = ln 2.
	shiny := byKey["yes/shiny"]
	assert.InDelta(t, 1.0/3.0, shiny.Tf, 1e-12)
	assert.InDelta(t, math.Log(2), shiny.Idf, 1e-12)
	assert.InDelta(t, math.Log(2)/3, shiny.TfIdf, 1e-12)

	// "legacy" appears only in no: tf = 2/3, idf = ln 2.
	legacy := byKey["no/legacy"]
	assert.InDelta(t, 2*math.Log(2)/3, legacy.TfIdf, 1e-12)

	// Weights are never negative, and each category is sorted descending.
	for _, r := range out {
		assert.GreaterOrEqual(t, r.TfIdf, 0.0, "row %+v", r)
	}
	assert.Equal(t, "legacy", out[0].Word) // no, highest weight first
	assert.Equal(t, "shiny", out[2].Word)  // yes, highest weight first
}

func TestTopTfIdf(t *testing.T) {
	rows := []types.TfIdfRow{
		{Category: "no", Word: "legacy", TfIdf: 0.4},
		{Category: "no", Word: "r", TfIdf: 0},
		{Category: "yes", Word: "shiny", TfIdf: 0.2},
		{Category: "yes", Word: "r", TfIdf: 0},
	}

	top := TopTfIdf(rows, 1)
	require.Len(t, top, 2)
	assert.Equal(t, "legacy", top[0].Word)
	assert.Equal(t, "shiny", top[1].Word)
}

func TestLengths(t *testing.T) {
	tokens := []types.CategoryToken{
		tok(2, "no", "legacy"), tok(2, "no", "slow"),
		tok(1, "yes", "r"), tok(1, "yes", "shiny"), tok(1, "yes", "fast"),
	}

	lengths := Lengths(tokens)
	require.Len(t, lengths, 2)
	assert.Equal(t, types.AbstractLength{AbstractID: 1, Category: "yes", Words: 3}, lengths[0])
	assert.Equal(t, types.AbstractLength{AbstractID: 2, Category: "no", Words: 2}, lengths[1])

	assert.Equal(t, []string{"no", "yes"}, Categories(lengths))
}

func TestKeywords(t *testing.T) {
	pooled := map[string]string{
		"yes": "data science is great. machine learning and data science win again.",
		"no":  "legacy code is slow. legacy code stays.",
	}

	rows := Keywords(pooled, 2)

	perCategory := map[string]int{}
	for _, r := range rows {
		perCategory[r.Category]++
		assert.NotEmpty(t, r.Phrase)
		assert.Greater(t, r.Score, 0.0)
	}
	assert.LessOrEqual(t, perCategory["yes"], 2)
	assert.LessOrEqual(t, perCategory["no"], 2)

	// Categories are emitted in sorted order.
	require.NotEmpty(t, rows)
	assert.Equal(t, "no", rows[0].Category)

	// The repeated multi-word phrase dominates its category.
	var topYes string
	for _, r := range rows {
		if r.Category == "yes" {
			topYes = r.Phrase
			break
		}
	}
	assert.Equal(t, "data science", topYes)
}
