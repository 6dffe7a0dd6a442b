// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toc detects table-of-contents pages and parses their entries.
package toc

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/pkg/types"
)

// entryPattern matches "<section number> <title> <dot leader> <page>"
// lines, e.g. "2.1.3 Power Negotiation .......... 54".
var entryPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\s+(.+?)\s*\.{2,}\s*(\d+)\s*$`)

const (
	defaultWindow        = 5
	defaultMinMatchLines = 5
)

// Summary describes one extraction run.
type Summary struct {
	// Entries is the ordered, deduplicated entry list.
	Entries []types.TocEntry

	// Dropped counts entries discarded for violating the non-decreasing
	// page invariant.
	Dropped int

	// TocPages lists the 1-based page numbers treated as ToC content.
	TocPages []int
}

// Extract scans doc for ToC pages and parses their lines into ordered
// entries. Lines that do not match the entry pattern are skipped
// silently; Extract fails only when no ToC pages are detected at all.
func Extract(doc *loader.Document, cfg types.TocConfig) (*Summary, error) {
	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}
	minLines := cfg.MinMatchLines
	if minLines <= 0 {
		minLines = defaultMinMatchLines
	}
	limit := doc.PageCount()
	if cfg.ScanLimit > 0 && cfg.ScanLimit < limit {
		limit = cfg.ScanLimit
	}

	// A detected ToC page pulls in a window of following pages, since
	// entry lists usually continue past the page with the heading.
	visited := make(map[int]bool)
	var tocPages []int
	for i := 0; i < limit; i++ {
		if visited[i] || !looksLikeToc(doc.Pages[i], minLines) {
			continue
		}
		for j := i; j < i+window && j < doc.PageCount(); j++ {
			if !visited[j] {
				visited[j] = true
				tocPages = append(tocPages, j+1)
			}
		}
	}

	if len(tocPages) == 0 {
		return nil, fmt.Errorf("no table of contents pages detected in %s", doc.Title)
	}
	sort.Ints(tocPages)

	var entries []types.TocEntry
	seen := make(map[string]bool)
	for _, pageNum := range tocPages {
		for _, line := range strings.Split(doc.Page(pageNum), "\n") {
			entry, ok := ParseLine(line)
			if !ok || seen[entry.SectionID] {
				continue
			}
			seen[entry.SectionID] = true
			entry.DocTitle = doc.Title
			entries = append(entries, entry)
		}
	}

	sortBySectionID(entries)
	entries, dropped := enforcePageOrder(entries)

	return &Summary{Entries: entries, Dropped: dropped, TocPages: tocPages}, nil
}

// looksLikeToc reports whether a page reads as ToC content: either a
// contents heading or enough entry-like lines on their own.
func looksLikeToc(text string, minLines int) bool {
	if strings.Contains(text, "Table of Contents") || strings.Contains(text, "CONTENTS") {
		return true
	}
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if entryPattern.MatchString(line) {
			n++
			if n >= minLines {
				return true
			}
		}
	}
	return false
}

// ParseLine parses a single ToC line. It returns ok=false for lines
// that do not match the entry pattern or whose trailing page number
// does not fit in an int.
func ParseLine(line string) (types.TocEntry, bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return types.TocEntry{}, false
	}
	page, err := strconv.Atoi(m[3])
	if err != nil {
		return types.TocEntry{}, false
	}

	id := m[1]
	entry := types.TocEntry{
		SectionID: id,
		Title:     strings.TrimSpace(m[2]),
		Page:      page,
		Level:     strings.Count(id, ".") + 1,
	}
	if i := strings.LastIndex(id, "."); i >= 0 {
		entry.ParentID = id[:i]
	}
	return entry, true
}

// sortBySectionID orders entries by their dotted section numbers, so
// "2.10" sorts after "2.9" and before "3".
func sortBySectionID(entries []types.TocEntry) {
	sort.SliceStable(entries, func(a, b int) bool {
		return compareSectionIDs(entries[a].SectionID, entries[b].SectionID) < 0
	})
}

func compareSectionIDs(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, _ := strconv.Atoi(as[i])
		bi, _ := strconv.Atoi(bs[i])
		if ai != bi {
			return ai - bi
		}
	}
	return len(as) - len(bs)
}

// enforcePageOrder drops entries whose listed page precedes an earlier
// entry's page. The entry sequence must be non-decreasing in page; a
// violation is a parse artifact, not a real section.
func enforcePageOrder(entries []types.TocEntry) ([]types.TocEntry, int) {
	kept := entries[:0]
	maxPage, dropped := 0, 0
	for _, e := range entries {
		if e.Page < maxPage {
			dropped++
			continue
		}
		maxPage = e.Page
		kept = append(kept, e)
	}
	return kept, dropped
}
