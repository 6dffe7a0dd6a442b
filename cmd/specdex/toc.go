// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/internal/toc"
)

var tocCmd = &cobra.Command{
	Use:   "toc [pdf]",
	Short: "Extract and print the table of contents",
	Long: `Toc scans the document for table-of-contents pages, parses the entry
lines, and prints the ordered entries. Lines that do not look like
"<number> <title> ... <page>" are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToc,
}

func init() {
	tocCmd.Flags().Bool("json", false, "output entries as JSON")
	tocCmd.Flags().Int("scan-limit", 0, "pages to scan for ToC content (0 = all)")
	tocCmd.Flags().Bool("fallback-pdftotext", false, "fall back to pdftotext when native extraction yields nothing")

	rootCmd.AddCommand(tocCmd)
}

func runToc(cmd *cobra.Command, args []string) error {
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

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary.Entries)
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-50s  %5s  %5s\n", "Section", "Title", "Page", "Level")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 77))
	for _, e := range summary.Entries {
		title := e.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-50s  %5d  %5d\n", e.SectionID, title, e.Page, e.Level)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries", len(summary.Entries))
	if summary.Dropped > 0 {
		fmt.Fprintf(os.Stdout, " (%d dropped for page order)", summary.Dropped)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
