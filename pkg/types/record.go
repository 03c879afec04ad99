// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the state of PDF-to-text conversion for a submission.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Outcome is the review decision for a submission, as recorded in the
// acceptance table.
type Outcome string

const (
	OutcomeAccepted Outcome = "yes"
	OutcomeRejected Outcome = "no"
)

// Valid reports whether o is one of the known outcome values.
func (o Outcome) Valid() bool {
	return o == OutcomeAccepted || o == OutcomeRejected
}

// Label returns the category name used in report chart series.
func (o Outcome) Label() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	}
	return string(o)
}

// AbstractRecord holds the fields extracted from one converted submission.
// Records are written once by the extract stage and read by the join stage.
type AbstractRecord struct {
	// Submission is the source file stem (e.g. "submission-017").
	Submission string `json:"submission" yaml:"submission"`

	// Title is the submission title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// TitleKey is the normalized, truncated join key derived from Title.
	TitleKey string `json:"title_key" yaml:"title_key"`

	// Abstract is the abstract body text with line structure preserved.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// Complete reports whether both marker fields were found in the source text.
func (r AbstractRecord) Complete() bool {
	return r.Title != "" && r.Abstract != ""
}

// AcceptanceRecord is one row of the acceptance-outcome table.
type AcceptanceRecord struct {
	// TitleKey is derived from the table's Title column with the same
	// normalization applied to extracted records.
	TitleKey string `json:"title_key" yaml:"title_key"`

	// Accepted is the review outcome.
	Accepted Outcome `json:"accepted" yaml:"accepted"`
}

// JoinedAbstract is an extracted record matched with its review outcome.
type JoinedAbstract struct {
	// ID is assigned sequentially during the join and is stable within a
	// single run only.
	ID int `json:"id" yaml:"id"`

	// Submission is the source file stem.
	Submission string `json:"submission" yaml:"submission"`

	// Title is the submission title.
	Title string `json:"title" yaml:"title"`

	// TitleKey is the join key the record matched on.
	TitleKey string `json:"title_key" yaml:"title_key"`

	// Abstract is the abstract body text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Accepted is the review outcome from the acceptance table.
	Accepted Outcome `json:"accepted" yaml:"accepted"`
}

// Token is one kept word occurrence from a tokenized abstract.
type Token struct {
	// AbstractID references the joined abstract the word occurred in.
	AbstractID int `json:"abstract_id" yaml:"abstract_id"`

	// Word is the cleaned, lowercased token.
	Word string `json:"word" yaml:"word"`
}
