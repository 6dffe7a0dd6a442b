// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the specdex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/specdex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the specdex CLI.
var rootCmd = &cobra.Command{
	Use:   "specdex",
	Short: "Extract structured sections from specification PDFs",
	Long: `specdex parses a technical specification PDF, extracts its table of
contents, slices the body text into per-section chunks, and writes them
as JSON Lines for downstream indexing.

Each pipeline stage is a subcommand: toc extracts and prints entries,
parse runs the full pipeline, validate checks the body structure against
the ToC, and index manages the SQLite section index.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./specdex.yaml or ~/.config/specdex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("specdex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "specdex"))
		}
	}

	viper.SetEnvPrefix("SPECDEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles stage configuration from the config file,
// environment, and command flags. Flags win over the config file.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	viper.SetDefault("toc.window", 5)
	viper.SetDefault("toc.min_match_lines", 5)
	viper.SetDefault("output.dir", "output")
	viper.SetDefault("validation.min_similarity", 0.9)
	viper.SetDefault("index.index_dir", "index")
	viper.SetDefault("index.max_results", 20)

	cfg := types.PipelineConfig{
		Loader: types.LoaderConfig{
			FallbackPdftotext: viper.GetBool("loader.fallback_pdftotext"),
		},
		Toc: types.TocConfig{
			ScanLimit:     viper.GetInt("toc.scan_limit"),
			Window:        viper.GetInt("toc.window"),
			MinMatchLines: viper.GetInt("toc.min_match_lines"),
		},
		Output: types.OutputConfig{
			Dir: viper.GetString("output.dir"),
		},
		Validation: types.ValidationConfig{
			MinSimilarity: viper.GetFloat64("validation.min_similarity"),
		},
		Index: types.IndexConfig{
			IndexDir:   viper.GetString("index.index_dir"),
			MaxResults: viper.GetInt("index.max_results"),
		},
	}

	if cmd.Flags().Changed("fallback-pdftotext") {
		cfg.Loader.FallbackPdftotext, _ = cmd.Flags().GetBool("fallback-pdftotext")
	}
	if cmd.Flags().Changed("scan-limit") {
		cfg.Toc.ScanLimit, _ = cmd.Flags().GetInt("scan-limit")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("index-dir") {
		cfg.Index.IndexDir, _ = cmd.Flags().GetString("index-dir")
	}
	if cmd.Flags().Changed("max-results") {
		cfg.Index.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	return cfg
}

// inputPath resolves the input PDF from the positional argument or the
// configured default.
func inputPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := viper.GetString("input"); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("input PDF required: pass a path or set 'input' in the config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
