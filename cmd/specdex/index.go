// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/specdex/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the section index (store, query, export)",
	Long: `Index manages a local SQLite index built from JSONL section files.
Use subcommands to ingest files, run full-text queries over section
text, or export the index.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store [files...]",
	Short: "Ingest JSONL section files into the index",
	Long: `Store reads JSONL section files (by default every *.jsonl under the
output directory), ingests them into the SQLite database with FTS5
indexing, and skips files unchanged since the last run.`,
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	files := args
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(cfg.Output.Dir, "*.jsonl"))
		if err != nil {
			return fmt.Errorf("scanning %s: %w", cfg.Output.Dir, err)
		}
		files = matches
	}
	if len(files) == 0 {
		return fmt.Errorf("no JSONL files to index in %s", cfg.Output.Dir)
	}

	store, err := index.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), files, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Query the section index with full-text search and filters",
	Long: `Query searches section text with FTS5, optionally filtered by
document or section number. Results are ranked by relevance for
full-text queries, or ordered by document and page otherwise.`,
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	opts := index.QueryOptions{
		Query:      strings.Join(args, " "),
		MaxResults: cfg.Index.MaxResults,
	}
	opts.DocID, _ = cmd.Flags().GetString("doc")
	opts.SectionID, _ = cmd.Flags().GetString("section")

	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --doc, or --section")
	}

	store, err := index.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-10s  %-40s  %s\n",
		"Rank", "Doc", "Section", "Title", "Pages")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for i, r := range results {
		doc := r.DocID
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-10s  %-40s  %d-%d\n",
			i+1, doc, r.SectionID, title, r.StartPage, r.EndPage)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the section index to JSON or YAML",
	Long: `Export writes the full section index (or a filtered subset) to
<index-dir>/export.json or export.yaml. Supports the same filter flags
as query.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg := pipelineConfig(cmd)

	store, err := index.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	var opts index.QueryOptions
	opts.DocID, _ = cmd.Flags().GetString("doc")
	opts.SectionID, _ = cmd.Flags().GetString("section")

	switch format {
	case "json", "":
		if err := store.ExportJSON(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.Index.IndexDir, "export.json"))
	case "yaml":
		if err := store.ExportYAML(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.Index.IndexDir, "export.yaml"))
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
	return nil
}

func init() {
	indexStoreCmd.Flags().String("output-dir", "output", "directory scanned for JSONL files when none are given")
	indexStoreCmd.Flags().String("index-dir", "index", "directory for the section index database")

	indexQueryCmd.Flags().String("index-dir", "index", "directory for the section index database")
	indexQueryCmd.Flags().String("doc", "", "filter by document ID")
	indexQueryCmd.Flags().String("section", "", "filter by section number")
	indexQueryCmd.Flags().Int("max-results", 20, "maximum number of query results")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	indexExportCmd.Flags().String("index-dir", "index", "directory for the section index database")
	indexExportCmd.Flags().String("format", "json", "export format: json or yaml")
	indexExportCmd.Flags().String("doc", "", "filter by document ID")
	indexExportCmd.Flags().String("section", "", "filter by section number")

	indexCmd.AddCommand(indexStoreCmd, indexQueryCmd, indexExportCmd)
	rootCmd.AddCommand(indexCmd)
}
