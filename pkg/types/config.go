package types

// ConversionBackend identifies the PDF-to-text conversion backend.
type ConversionBackend string

const (
	BackendAuto      ConversionBackend = "auto"
	BackendPdftotext ConversionBackend = "pdftotext"
	BackendBuiltin   ConversionBackend = "builtin"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the conversion backend: auto, pdftotext, or builtin.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// SubmissionsDir is the base directory for submissions (contains pdf/, text/, records/).
	SubmissionsDir string `json:"submissions_dir" yaml:"submissions_dir"`
}

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// SubmissionsDir is the base directory for submissions (contains text/, records/).
	SubmissionsDir string `json:"submissions_dir" yaml:"submissions_dir"`

	// MarkersPath optionally points at a marker-set YAML file replacing the
	// built-in field vocabulary.
	MarkersPath string `json:"markers_path,omitempty" yaml:"markers_path,omitempty"`
}

// JoinConfig holds settings for the join stage.
type JoinConfig struct {
	// SubmissionsDir is the base directory for submissions (contains records/).
	SubmissionsDir string `json:"submissions_dir" yaml:"submissions_dir"`

	// AcceptancePath is the path to the acceptance-outcome CSV.
	AcceptancePath string `json:"acceptance_path" yaml:"acceptance_path"`

	// CorpusDir is the base directory for the corpus database.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`
}

// TokenizeConfig holds settings for the tokenize stage.
type TokenizeConfig struct {
	// CorpusDir is the base directory for the corpus database.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// StopWordsPath optionally points at a newline-separated stop-word list
	// replacing the built-in English list.
	StopWordsPath string `json:"stop_words_path,omitempty" yaml:"stop_words_path,omitempty"`

	// KeepWords lists tokens exempt from stop-word removal (default: "r").
	KeepWords []string `json:"keep_words" yaml:"keep_words"`
}

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// CorpusDir is the base directory for the corpus database.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// ReportDir is the directory the rendered report is written to.
	ReportDir string `json:"report_dir" yaml:"report_dir"`

	// TopWords is the number of words per category in the frequency view (default 20).
	TopWords int `json:"top_words" yaml:"top_words"`

	// TopTfIdf is the number of words per category in the TF-IDF view (default 10).
	TopTfIdf int `json:"top_tfidf" yaml:"top_tfidf"`

	// TopKeywords is the number of phrases per category in the keyword view (default 10).
	TopKeywords int `json:"top_keywords" yaml:"top_keywords"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Join       JoinConfig       `json:"join" yaml:"join"`
	Tokenize   TokenizeConfig   `json:"tokenize" yaml:"tokenize"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}
