// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/specdex/internal/index"
	"github.com/pdiddy/specdex/internal/jsonl"
	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/internal/slicer"
	"github.com/pdiddy/specdex/internal/toc"
	"github.com/pdiddy/specdex/internal/validate"
)

var parseCmd = &cobra.Command{
	Use:   "parse [pdf]",
	Short: "Run the full pipeline and write section records as JSON Lines",
	Long: `Parse loads the PDF, extracts its table of contents, slices the body
into per-section page ranges, and writes one JSON record per section.
The run fails before any output is written when the PDF cannot be
loaded or no ToC is found; a write failure aborts mid-run and may leave
a partial output file behind.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("output", "", "output JSONL path (default: <output-dir>/<doc>.jsonl)")
	parseCmd.Flags().String("output-dir", "output", "directory for JSONL output files")
	parseCmd.Flags().String("report", "", "also write a YAML validation report to this path")
	parseCmd.Flags().Bool("index", false, "ingest the output into the section index")
	parseCmd.Flags().String("index-dir", "index", "directory for the section index database")
	parseCmd.Flags().Int("scan-limit", 0, "pages to scan for ToC content (0 = all)")
	parseCmd.Flags().Bool("fallback-pdftotext", false, "fall back to pdftotext when native extraction yields nothing")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	records := slicer.SliceByPages(doc, summary.Entries)

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, doc.Title+".jsonl")
	}
	if err := jsonl.Write(outPath, records); err != nil {
		return err
	}

	report := validate.Compare(doc.Title, summary.Entries, slicer.ChunkByHeadings(doc), cfg.Validation)
	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := validate.WriteReport(reportPath, report); err != nil {
			return err
		}
	}

	printParseSummary(os.Stdout, doc, summary, len(records), report, outPath)

	if doIndex, _ := cmd.Flags().GetBool("index"); doIndex {
		store, err := index.NewStore(cfg.Index)
		if err != nil {
			return err
		}
		defer store.Close()

		ingest, err := store.Ingest(cmd.Context(), []string{outPath}, os.Stdout)
		if err != nil {
			return err
		}
		if ingest.HasFailures() {
			return fmt.Errorf("%d file(s) failed indexing", ingest.Failed)
		}
	}
	return nil
}
