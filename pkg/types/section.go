// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TocEntry is one parsed line of the table of contents.
type TocEntry struct {
	// DocTitle is the source document title (file base name without extension).
	DocTitle string `json:"doc_title" yaml:"doc_title"`

	// SectionID is the dotted section number, e.g. "2.1.3".
	SectionID string `json:"section_id" yaml:"section_id"`

	// Title is the section title as printed in the ToC line.
	Title string `json:"title" yaml:"title"`

	// Page is the 1-based page number the ToC lists for the section.
	Page int `json:"page" yaml:"page"`

	// Level is the nesting depth derived from SectionID: 1 for "3", 2 for "3.1".
	Level int `json:"level" yaml:"level"`

	// ParentID is SectionID with the last component removed; empty at level 1.
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
}

// FullPath returns "<section id> <title>", the form used to match the
// entry against headings found in the body.
func (e TocEntry) FullPath() string {
	return e.SectionID + " " + e.Title
}

// SectionRecord pairs a ToC entry with its page-sliced body text. It is
// the JSONL output unit.
type SectionRecord struct {
	DocTitle  string `json:"doc_title" yaml:"doc_title"`
	SectionID string `json:"section_id" yaml:"section_id"`
	Title     string `json:"title" yaml:"title"`
	StartPage int    `json:"start_page" yaml:"start_page"`
	EndPage   int    `json:"end_page" yaml:"end_page"`
	Text      string `json:"text" yaml:"text"`
}

// HeadingChunk is a body chunk delimited by numbered headings found in
// the page text rather than by ToC page boundaries. Used by validation
// to check the sliced output against the document's real structure.
type HeadingChunk struct {
	// SectionPath is the breadcrumb of open headings, e.g.
	// "2 Overview > 2.1 Scope".
	SectionPath string `json:"section_path" yaml:"section_path"`

	// StartHeading is the heading line that opened the chunk.
	StartHeading string `json:"start_heading" yaml:"start_heading"`

	// Content is the accumulated body text up to the next heading.
	Content string `json:"content" yaml:"content"`

	// Tables and Figures collect body lines referencing tables and figures.
	Tables  []string `json:"tables,omitempty" yaml:"tables,omitempty"`
	Figures []string `json:"figures,omitempty" yaml:"figures,omitempty"`

	StartPage int `json:"start_page" yaml:"start_page"`
	EndPage   int `json:"end_page" yaml:"end_page"`
}
