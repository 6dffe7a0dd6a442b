// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slicer assigns contiguous page ranges of body text to ToC
// entries, and independently chunks the body by detected headings.
package slicer

import (
	"strings"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/pkg/types"
)

// SliceByPages builds one SectionRecord per ToC entry. An entry's range
// runs from its listed page to the page before the next entry's start;
// the final entry runs to the last page. Overlapping or out-of-order
// neighbours clamp the range to at least one page instead of producing
// an empty one.
//
// Page-boundary slicing can misattribute text when a section shares a
// page with an unlisted sub-heading; the validate stage surfaces the
// mismatch rather than the slicer guessing.
func SliceByPages(doc *loader.Document, entries []types.TocEntry) []types.SectionRecord {
	if doc.PageCount() == 0 {
		return nil
	}

	records := make([]types.SectionRecord, 0, len(entries))
	for i, e := range entries {
		start := e.Page
		if start < 1 {
			start = 1
		}
		if start > doc.PageCount() {
			start = doc.PageCount()
		}

		end := doc.PageCount()
		if i+1 < len(entries) {
			end = entries[i+1].Page - 1
		}
		if end < start {
			end = start
		}
		if end > doc.PageCount() {
			end = doc.PageCount()
		}

		var text strings.Builder
		for p := start; p <= end; p++ {
			if p > start {
				text.WriteString("\n")
			}
			text.WriteString(doc.Page(p))
		}

		records = append(records, types.SectionRecord{
			DocTitle:  e.DocTitle,
			SectionID: e.SectionID,
			Title:     e.Title,
			StartPage: start,
			EndPage:   end,
			Text:      text.String(),
		})
	}
	return records
}
