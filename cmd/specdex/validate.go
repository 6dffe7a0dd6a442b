// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/internal/slicer"
	"github.com/pdiddy/specdex/internal/toc"
	"github.com/pdiddy/specdex/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [pdf]",
	Short: "Check the document's body structure against its ToC",
	Long: `Validate chunks the body by its numbered headings and compares the
result with the table of contents: sections listed but never found,
headings not listed, and ordering mismatches. The report can be saved
as YAML with --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("output", "", "write the full report as YAML to this path")
	validateCmd.Flags().Int("scan-limit", 0, "pages to scan for ToC content (0 = all)")
	validateCmd.Flags().Bool("fallback-pdftotext", false, "fall back to pdftotext when native extraction yields nothing")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, err := inputPath(args)
	if err != nil {
		return err
	}
	cfg := pipelineConfig(cmd)

	doc, err := loader.Open(input, cfg.Loader)
	if err != nil {
		return err
	}

	summary, err := toc.Extract(doc, cfg.Toc)
	if err != nil {
		return err
	}

	chunks := slicer.ChunkByHeadings(doc)
	report := validate.Compare(doc.Title, summary.Entries, chunks, cfg.Validation)

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := validate.WriteReport(outPath, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Report written to %s\n", outPath)
	}

	printReportSummary(os.Stdout, report)
	for _, missing := range report.Missing {
		fmt.Fprintf(os.Stdout, "  missing: %s\n", missing)
	}
	for _, mismatch := range report.OutOfOrder {
		fmt.Fprintf(os.Stdout, "  out of order at %d: expected %q, found %q\n",
			mismatch.Position, mismatch.Expected, mismatch.Found)
	}
	return nil
}
