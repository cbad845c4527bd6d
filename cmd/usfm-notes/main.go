// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the usfm-notes CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/usfm-notes/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the usfm-notes CLI.
var rootCmd = &cobra.Command{
	Use:   "usfm-notes",
	Short: "Convert Biblica study notes and key terms to USFM",
	Long: `usfm-notes converts the Biblica JSON export of study notes and key terms
into USFM. Rich-text bodies are flattened, key-term links become \k spans,
and recognized Scripture citations become \xt cross-references.

study-notes writes one <CODE>_StudyNotes.SFM per book; key-terms writes one
combined dictionary file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(viper.GetString("log_level"))); err != nil {
			return fmt.Errorf("invalid log level %q: %w", viper.GetString("log_level"), err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./usfm-notes.yaml or ~/.config/usfm-notes/usfm-notes.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("pattern", "", "glob selecting source files inside input directories (default \"*.json\")")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("input_pattern", rootCmd.PersistentFlags().Lookup("pattern"))

	setDefaults(types.DefaultConfig())
}

func setDefaults(d types.Config) {
	viper.SetDefault("study_notes.input_dir", d.StudyNotes.InputDir)
	viper.SetDefault("study_notes.output_dir", d.StudyNotes.OutputDir)
	viper.SetDefault("key_terms.input_dir", d.KeyTerms.InputDir)
	viper.SetDefault("key_terms.output_file", d.KeyTerms.OutputFile)
	viper.SetDefault("index.path", d.Index.Path)
	viper.SetDefault("index.max_results", d.Index.MaxResults)
	viper.SetDefault("input_pattern", d.InputPattern)
	viper.SetDefault("manifest", d.Manifest)
	viper.SetDefault("log_level", d.LogLevel)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("usfm-notes")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "usfm-notes"))
		}
	}

	viper.SetEnvPrefix("USFM_NOTES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from defaults, config
// file, environment and the flags bound for the running command.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// bindFlags binds command flags to config keys. It runs from PreRunE so
// that commands sharing a key (study-notes --key-terms-dir and key-terms
// --input-dir) each bind only when they run.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
