// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// OrderMismatch records a section that appears in a different position
// in the body than the ToC predicts.
type OrderMismatch struct {
	Expected string `json:"expected" yaml:"expected"`
	Found    string `json:"found" yaml:"found"`
	Position int    `json:"position" yaml:"position"`
}

// ValidationReport summarizes how well the body headings match the ToC.
type ValidationReport struct {
	DocTitle        string          `json:"doc_title" yaml:"doc_title"`
	TocSections     int             `json:"toc_section_count" yaml:"toc_section_count"`
	ParsedSections  int             `json:"parsed_section_count" yaml:"parsed_section_count"`
	Matched         []string        `json:"matched_sections" yaml:"matched_sections"`
	Missing         []string        `json:"missing_sections,omitempty" yaml:"missing_sections,omitempty"`
	Extra           []string        `json:"extra_sections,omitempty" yaml:"extra_sections,omitempty"`
	OutOfOrder      []OrderMismatch `json:"out_of_order_sections,omitempty" yaml:"out_of_order_sections,omitempty"`
	MatchPercentage float64         `json:"match_percentage" yaml:"match_percentage"`
	Timestamp       time.Time       `json:"timestamp" yaml:"timestamp"`
}
