package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usfm-notes/internal/convert"
	"github.com/pdiddy/usfm-notes/internal/index"
	"github.com/pdiddy/usfm-notes/internal/resources"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

var studyNotesCmd = &cobra.Command{
	Use:   "study-notes",
	Short: "Convert study notes into per-book USFM files",
	Long: `Study-notes builds the key-term resource map from the key-terms directory,
converts every study note document, and writes one <CODE>_StudyNotes.SFM per
book. Notes are grouped by the book in their filename and sorted by reference.
Documents that fail to parse are reported and skipped.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"input-dir":     "study_notes.input_dir",
			"output-dir":    "study_notes.output_dir",
			"key-terms-dir": "key_terms.input_dir",
			"manifest":      "manifest",
			"index-path":    "index.path",
		})
	},
	RunE: runStudyNotes,
}

func init() {
	studyNotesCmd.Flags().String("input-dir", "", "directory of study note JSON documents")
	studyNotesCmd.Flags().String("output-dir", "", "directory for <CODE>_StudyNotes.SFM files")
	studyNotesCmd.Flags().String("key-terms-dir", "", "directory of key-term JSON documents for the resource map")
	studyNotesCmd.Flags().Bool("manifest", false, "write manifest.yaml describing the outputs")
	studyNotesCmd.Flags().Bool("index", false, "store the converted notes in the search index")
	studyNotesCmd.Flags().String("index-path", "", "index database file")

	rootCmd.AddCommand(studyNotesCmd)
}

func runStudyNotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := os.Stdout

	fmt.Fprintln(out, "Building resource map from key terms...")
	refs, built, err := resources.Build(cfg.KeyTerms.InputDir, cfg.InputPattern)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d key term resources in %d files\n", len(refs), built.Files)

	p := convert.NewProcessor(types.VariantStudyNotes, refs)
	result, err := convert.StudyNotes(p, cfg.StudyNotes, convert.Options{
		Pattern:  cfg.InputPattern,
		Manifest: cfg.Manifest,
	}, out)
	if err != nil {
		return err
	}

	if withIndex, _ := cmd.Flags().GetBool("index"); withIndex {
		store, err := index.NewStore(cfg.Index)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Ingest(cmd.Context(), result.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Indexed %d notes (%d new, %d updated) in %s\n",
			summary.Total(), summary.Indexed, summary.Updated, cfg.Index.Path)
	}

	fmt.Fprintf(out, "Conversion complete. Output written to %s\n", cfg.StudyNotes.OutputDir)
	return nil
}
