// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usfm-notes/internal/index"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search converted study notes",
	Long: `Search queries the notes index filled by "study-notes --index". The
optional query is an FTS4 match expression over the note text; --book limits
results to one USFM book code.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"index-path":  "index.path",
			"max-results": "index.max_results",
		})
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("book", "", "filter by USFM book code (e.g. MAT)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")
	searchCmd.Flags().String("index-path", "", "index database file")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := index.QueryOptions{MaxResults: cfg.Index.MaxResults}
	opts.Code, _ = cmd.Flags().GetString("book")
	if len(args) > 0 {
		opts.Query = args[0]
	}
	if opts.Query == "" && opts.Code == "" {
		return fmt.Errorf("query or filter required: provide a search query or --book")
	}

	store, err := index.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(os.Stdout, results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-12s  %s\n", "Book", "Reference", "Note")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range results {
		note := []rune(index.PlainText(r.Line))
		if len(note) > 60 {
			note = append(note[:57], []rune("...")...)
		}
		fmt.Fprintf(w, "%-4s  %-12s  %s\n", r.Code, r.Reference, string(note))
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}
