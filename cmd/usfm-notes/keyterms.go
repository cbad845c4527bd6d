package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usfm-notes/internal/convert"
	"github.com/pdiddy/usfm-notes/internal/resources"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

var keyTermsCmd = &cobra.Command{
	Use:   "key-terms",
	Short: "Convert key terms into a USFM dictionary",
	Long: `Key-terms converts every key-term document into one USFM dictionary
file, in filename order. The same directory supplies the resource map, so
terms that link to other terms render as \k spans.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"input-dir":   "key_terms.input_dir",
			"output-file": "key_terms.output_file",
			"manifest":    "manifest",
		})
	},
	RunE: runKeyTerms,
}

func init() {
	keyTermsCmd.Flags().String("input-dir", "", "directory of key-term JSON documents")
	keyTermsCmd.Flags().String("output-file", "", "dictionary output file")
	keyTermsCmd.Flags().Bool("manifest", false, "write a manifest next to the output file")

	rootCmd.AddCommand(keyTermsCmd)
}

func runKeyTerms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := os.Stdout

	fmt.Fprintln(out, "Building resource map...")
	refs, _, err := resources.Build(cfg.KeyTerms.InputDir, cfg.InputPattern)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d resources\n", len(refs))

	p := convert.NewProcessor(types.VariantKeyTerms, refs)
	if _, err := convert.KeyTerms(p, cfg.KeyTerms, convert.Options{
		Pattern:  cfg.InputPattern,
		Manifest: cfg.Manifest,
	}, out); err != nil {
		return err
	}

	fmt.Fprintf(out, "Conversion complete. Output written to %s\n", cfg.KeyTerms.OutputFile)
	return nil
}
