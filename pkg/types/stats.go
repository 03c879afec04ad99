// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FrequencyRow is a per-category word occurrence count.
type FrequencyRow struct {
	// Category is the outcome value the count was taken over.
	Category string `json:"category" yaml:"category" parquet:"category"`

	// Word is the counted token.
	Word string `json:"word" yaml:"word" parquet:"word"`

	// N is the number of occurrences of Word across the category's abstracts.
	N int `json:"n" yaml:"n" parquet:"n"`
}

// TfIdfRow is a per-category word weight, computed with the category as the
// document unit: tf is the word's share of all words in the category, idf is
// ln(#categories / #categories containing the word).
type TfIdfRow struct {
	Category string  `json:"category" yaml:"category" parquet:"category"`
	Word     string  `json:"word" yaml:"word" parquet:"word"`
	N        int     `json:"n" yaml:"n" parquet:"n"`
	Tf       float64 `json:"tf" yaml:"tf" parquet:"tf"`
	Idf      float64 `json:"idf" yaml:"idf" parquet:"idf"`
	TfIdf    float64 `json:"tf_idf" yaml:"tf_idf" parquet:"tf_idf"`
}

// KeywordRow is a keyword phrase scored within one category's pooled text.
type KeywordRow struct {
	Category string  `json:"category" yaml:"category"`
	Phrase   string  `json:"phrase" yaml:"phrase"`
	Score    float64 `json:"score" yaml:"score"`
}

// CategoryToken is a token occurrence labeled with its abstract's category.
type CategoryToken struct {
	AbstractID int    `json:"abstract_id" yaml:"abstract_id"`
	Category   string `json:"category" yaml:"category"`
	Word       string `json:"word" yaml:"word"`
}

// AbstractLength is the kept-token count of one joined abstract.
type AbstractLength struct {
	AbstractID int    `json:"abstract_id" yaml:"abstract_id"`
	Category   string `json:"category" yaml:"category"`
	Words      int    `json:"words" yaml:"words"`
}
