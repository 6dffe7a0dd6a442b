package types

// LoaderConfig holds settings for PDF loading and text extraction.
type LoaderConfig struct {
	// FallbackPdftotext enables shelling out to pdftotext -layout when
	// native extraction fails or yields no text.
	FallbackPdftotext bool `json:"fallback_pdftotext" yaml:"fallback_pdftotext"`
}

// TocConfig holds settings for table-of-contents detection and parsing.
type TocConfig struct {
	// ScanLimit bounds how many pages are scanned for ToC content.
	// Zero scans the whole document.
	ScanLimit int `json:"scan_limit" yaml:"scan_limit"`

	// Window is the number of consecutive pages pulled in once a ToC
	// page is detected (default 5).
	Window int `json:"window" yaml:"window"`

	// MinMatchLines is the number of entry-like lines that mark a page
	// as ToC even without a contents heading (default 5).
	MinMatchLines int `json:"min_match_lines" yaml:"min_match_lines"`
}

// OutputConfig holds settings for the JSONL output stage.
type OutputConfig struct {
	// Dir is the directory for JSONL output files (default "output").
	Dir string `json:"dir" yaml:"dir"`
}

// ValidationConfig holds settings for structure validation.
type ValidationConfig struct {
	// MinSimilarity is the fuzzy-match threshold for pairing a ToC entry
	// with a body heading when no exact match exists (default 0.9).
	MinSimilarity float64 `json:"min_similarity" yaml:"min_similarity"`
}

// IndexConfig holds settings for the section index.
type IndexConfig struct {
	// IndexDir is the directory containing the SQLite database (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Loader     LoaderConfig     `json:"loader" yaml:"loader"`
	Toc        TocConfig        `json:"toc" yaml:"toc"`
	Output     OutputConfig     `json:"output" yaml:"output"`
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	Index      IndexConfig      `json:"index" yaml:"index"`
}
