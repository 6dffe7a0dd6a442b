// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/internal/toc"
	"github.com/pdiddy/specdex/pkg/types"
)

var (
	// headerStyle for the document title line
	headerStyle = lipgloss.NewStyle().Bold(true)

	// dimStyle for muted field labels
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// successStyle for healthy structure matches
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	// warnStyle for partial matches and dropped entries
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	// errorStyle for poor structure matches
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// printParseSummary renders the end-of-run summary for parse.
func printParseSummary(w io.Writer, doc *loader.Document, summary *toc.Summary, records int, report types.ValidationReport, outPath string) {
	fmt.Fprintln(w, headerStyle.Render(doc.Title))
	fmt.Fprintf(w, "%s %d pages, %d ToC pages\n",
		dimStyle.Render("Document:"), doc.PageCount(), len(summary.TocPages))

	fmt.Fprintf(w, "%s %d entries", dimStyle.Render("ToC:"), len(summary.Entries))
	if summary.Dropped > 0 {
		fmt.Fprintf(w, " %s", warnStyle.Render(fmt.Sprintf("(%d dropped for page order)", summary.Dropped)))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %d records written to %s\n", dimStyle.Render("Output:"), records, outPath)
	printReportSummary(w, report)
}

// printReportSummary renders a one-line structure health summary.
func printReportSummary(w io.Writer, report types.ValidationReport) {
	style := successStyle
	switch {
	case report.MatchPercentage < 50:
		style = errorStyle
	case report.MatchPercentage < 80:
		style = warnStyle
	}

	pct := fmt.Sprintf("%.1f%% matched", report.MatchPercentage)
	fmt.Fprintf(w, "%s %s (%d missing, %d extra, %d out of order)\n",
		dimStyle.Render("Structure:"), style.Render(pct),
		len(report.Missing), len(report.Extra), len(report.OutOfOrder))
}
