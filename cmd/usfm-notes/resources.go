package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usfm-notes/internal/resources"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Build the key-term resource map and report or export it",
	Long: `Resources scans the key-terms directory and builds the referenceId to
name map used to resolve key-term links. Use --export to write the map as
YAML for inspection.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"input-dir": "key_terms.input_dir",
		})
	},
	RunE: runResources,
}

func init() {
	resourcesCmd.Flags().String("input-dir", "", "directory of key-term JSON documents")
	resourcesCmd.Flags().String("export", "", "write the map to this YAML file")

	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	refs, built, err := resources.Build(cfg.KeyTerms.InputDir, cfg.InputPattern)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "files: %d, added: %d, skipped: %d, failed: %d, resources: %d\n",
		built.Files, built.Added, built.Skipped, built.Failed, len(refs))

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if err := refs.ExportYAML(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "exported: %s\n", path)
	}
	return nil
}
