// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/specdex/pkg/types"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "2.1 Messages", b: "2.1 Messages", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "abc", b: "", want: 0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "single substitution", a: "abc", b: "abd", want: 2.0 / 3.0},
		{name: "near match", a: "2 Messages", b: "2 Message", want: 18.0 / 19.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func tocEntries() []types.TocEntry {
	return []types.TocEntry{
		{DocTitle: "spec", SectionID: "1", Title: "Introduction", Page: 1, Level: 1},
		{DocTitle: "spec", SectionID: "1.1", Title: "Scope", Page: 2, Level: 2, ParentID: "1"},
		{DocTitle: "spec", SectionID: "2", Title: "Messages", Page: 3, Level: 1},
	}
}

func chunk(heading string) types.HeadingChunk {
	return types.HeadingChunk{SectionPath: heading, StartHeading: heading, StartPage: 1, EndPage: 1}
}

func TestCompareExactMatches(t *testing.T) {
	chunks := []types.HeadingChunk{
		chunk("1 Introduction"),
		chunk("1.1 Scope"),
		chunk("2 Messages"),
	}

	report := Compare("spec", tocEntries(), chunks, types.ValidationConfig{})

	assert.Equal(t, 3, report.TocSections)
	assert.Equal(t, 3, report.ParsedSections)
	assert.Len(t, report.Matched, 3)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Extra)
	assert.Empty(t, report.OutOfOrder)
	assert.InDelta(t, 100.0, report.MatchPercentage, 1e-9)
}

func TestCompareFuzzyMatch(t *testing.T) {
	// Heading lost a trailing character during extraction.
	chunks := []types.HeadingChunk{
		chunk("1 Introduction"),
		chunk("1.1 Scope"),
		chunk("2 Message"),
	}

	report := Compare("spec", tocEntries(), chunks, types.ValidationConfig{})

	assert.Len(t, report.Matched, 3)
	assert.Empty(t, report.Missing)
	// The fuzzy-matched heading still counts as extra by exact comparison.
	assert.Equal(t, []string{"2 Message"}, report.Extra)
}

func TestCompareMissingAndExtra(t *testing.T) {
	chunks := []types.HeadingChunk{
		chunk("1 Introduction"),
		chunk("1.1 Scope"),
		chunk("9 Annex"),
	}

	report := Compare("spec", tocEntries(), chunks, types.ValidationConfig{})

	assert.Equal(t, []string{"2 Messages"}, report.Missing)
	assert.Equal(t, []string{"9 Annex"}, report.Extra)
	assert.InDelta(t, 200.0/3.0, report.MatchPercentage, 1e-6)
}

func TestCompareOutOfOrder(t *testing.T) {
	chunks := []types.HeadingChunk{
		chunk("1.1 Scope"),
		chunk("1 Introduction"),
		chunk("2 Messages"),
	}

	report := Compare("spec", tocEntries(), chunks, types.ValidationConfig{})

	require.Len(t, report.OutOfOrder, 2)
	assert.Equal(t, "1 Introduction", report.OutOfOrder[0].Expected)
	assert.Equal(t, "1.1 Scope", report.OutOfOrder[0].Found)
	assert.Equal(t, 0, report.OutOfOrder[0].Position)
}

func TestCompareEmptyToc(t *testing.T) {
	report := Compare("spec", nil, []types.HeadingChunk{chunk("1 Intro")}, types.ValidationConfig{})
	assert.Zero(t, report.MatchPercentage)
	assert.Equal(t, 0, report.TocSections)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "spec.yaml")
	report := Compare("spec", tocEntries(), []types.HeadingChunk{
		chunk("1 Introduction"),
		chunk("1.1 Scope"),
		chunk("2 Messages"),
	}, types.ValidationConfig{})

	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.ValidationReport
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, report.Matched, got.Matched)
	assert.InDelta(t, report.MatchPercentage, got.MatchPercentage, 1e-9)
}
