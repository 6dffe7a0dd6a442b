// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/pkg/types"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want types.TocEntry
		ok   bool
	}{
		{
			name: "simple entry",
			line: "1.1 Overview .......... 5",
			want: types.TocEntry{SectionID: "1.1", Title: "Overview", Page: 5, Level: 2, ParentID: "1"},
			ok:   true,
		},
		{
			name: "deep section keeps dotted parent",
			line: "  2.1.3  Power Negotiation ....... 54  ",
			want: types.TocEntry{SectionID: "2.1.3", Title: "Power Negotiation", Page: 54, Level: 3, ParentID: "2.1"},
			ok:   true,
		},
		{
			name: "top level entry has no parent",
			line: "3 Protocol Layer ........ 101",
			want: types.TocEntry{SectionID: "3", Title: "Protocol Layer", Page: 101, Level: 1},
			ok:   true,
		},
		{
			name: "multi-word title with digits",
			line: "6.4.1 GoodCRC Message 2 ........ 210",
			want: types.TocEntry{SectionID: "6.4.1", Title: "GoodCRC Message 2", Page: 210, Level: 3, ParentID: "6.4"},
			ok:   true,
		},
		{name: "no trailing page number", line: "1.2 Scope ..........", ok: false},
		{name: "no dot leader", line: "1.2 Scope 7", ok: false},
		{name: "prose line", line: "This chapter describes the protocol stack.", ok: false},
		{name: "page number overflows int", line: "1.2 Scope .... 99999999999999999999", ok: false},
		{name: "empty line", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func testDoc(pages ...string) *loader.Document {
	return &loader.Document{Title: "usb-pd", Path: "usb-pd.pdf", Pages: pages}
}

func TestExtractKeywordDetection(t *testing.T) {
	doc := testDoc(
		"USB Power Delivery Specification\nRevision 3.2",
		"Table of Contents\n1 Introduction .......... 4\n1.1 Overview .......... 4\n2 Protocol .......... 7",
		"",
		"1 Introduction\nbody",
		"",
		"",
		"2 Protocol\nbody",
	)

	summary, err := Extract(doc, types.TocConfig{})
	require.NoError(t, err)

	require.Len(t, summary.Entries, 3)
	assert.Equal(t, "1", summary.Entries[0].SectionID)
	assert.Equal(t, "1.1", summary.Entries[1].SectionID)
	assert.Equal(t, "2", summary.Entries[2].SectionID)
	assert.Equal(t, "usb-pd", summary.Entries[0].DocTitle)
	assert.Equal(t, 0, summary.Dropped)
	assert.Contains(t, summary.TocPages, 2)
}

func TestExtractLineHeuristicDetection(t *testing.T) {
	// No contents heading, but enough dotted-leader lines on their own.
	lines := []string{
		"1 Introduction .......... 4",
		"2 Terms .......... 6",
		"3 Architecture .......... 9",
		"4 Protocol .......... 15",
		"5 Electrical .......... 30",
	}
	doc := testDoc("Cover", strings.Join(lines, "\n"), "body")

	summary, err := Extract(doc, types.TocConfig{})
	require.NoError(t, err)
	assert.Len(t, summary.Entries, 5)

	// Four entry lines stay below the default threshold.
	doc = testDoc("Cover", strings.Join(lines[:4], "\n"), "body")
	_, err = Extract(doc, types.TocConfig{})
	assert.Error(t, err)
}

func TestExtractNoTocFails(t *testing.T) {
	doc := testDoc("Cover page", "1 Introduction\nprose", "2 Protocol\nprose")
	_, err := Extract(doc, types.TocConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table of contents")
}

func TestExtractSkipsMalformedLines(t *testing.T) {
	doc := testDoc(
		"Table of Contents\n" +
			"1 Introduction .......... 2\n" +
			"garbage line without structure\n" +
			"1.1 Scope ..........\n" + // no trailing number
			"2 Protocol .......... 3",
		"1 Introduction",
		"2 Protocol",
	)

	summary, err := Extract(doc, types.TocConfig{})
	require.NoError(t, err)

	ids := make([]string, 0, len(summary.Entries))
	for _, e := range summary.Entries {
		ids = append(ids, e.SectionID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestExtractDeduplicatesSectionIDs(t *testing.T) {
	// The same entry visible on two detected ToC pages counts once.
	doc := testDoc(
		"Table of Contents\n1 Introduction .......... 3\n2 Protocol .......... 5",
		"CONTENTS\n2 Protocol .......... 5\n3 Electrical .......... 8",
		"1 Introduction",
	)

	summary, err := Extract(doc, types.TocConfig{})
	require.NoError(t, err)
	require.Len(t, summary.Entries, 3)
	assert.Equal(t, "2", summary.Entries[1].SectionID)
}

func TestExtractDropsPageOrderViolations(t *testing.T) {
	doc := testDoc(
		"Table of Contents\n" +
			"1 Introduction .......... 5\n" +
			"2 Protocol .......... 3\n" + // listed page moves backwards
			"3 Electrical .......... 9",
		"body",
	)

	summary, err := Extract(doc, types.TocConfig{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Dropped)
	require.Len(t, summary.Entries, 2)
	assert.Equal(t, "1", summary.Entries[0].SectionID)
	assert.Equal(t, "3", summary.Entries[1].SectionID)
}

func TestExtractSortsBySectionID(t *testing.T) {
	doc := testDoc(
		"Table of Contents\n" +
			"2.10 Collision Avoidance .......... 40\n" +
			"2.2 Messages .......... 20\n" +
			"2.9 Timers .......... 38",
		"body",
	)

	summary, err := Extract(doc, types.TocConfig{})
	require.NoError(t, err)

	ids := make([]string, 0, len(summary.Entries))
	for _, e := range summary.Entries {
		ids = append(ids, e.SectionID)
	}
	assert.Equal(t, []string{"2.2", "2.9", "2.10"}, ids)
}

func TestExtractHonorsScanLimit(t *testing.T) {
	doc := testDoc(
		"Cover",
		"Intro prose",
		"Table of Contents\n1 Introduction .......... 4\n2 Protocol .......... 6",
	)

	_, err := Extract(doc, types.TocConfig{ScanLimit: 2})
	assert.Error(t, err)

	summary, err := Extract(doc, types.TocConfig{ScanLimit: 3})
	require.NoError(t, err)
	assert.Len(t, summary.Entries, 2)
}

func TestCompareSectionIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1", "2", -1},
		{"2", "2", 0},
		{"2.9", "2.10", -1},
		{"2.1", "2", 1},
		{"10", "9", 1},
	}
	for _, tt := range tests {
		got := compareSectionIDs(tt.a, tt.b)
		switch {
		case tt.want < 0:
			assert.Negative(t, got, "%s vs %s", tt.a, tt.b)
		case tt.want > 0:
			assert.Positive(t, got, "%s vs %s", tt.a, tt.b)
		default:
			assert.Zero(t, got, "%s vs %s", tt.a, tt.b)
		}
	}
}
