// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/usfm-notes/pkg/types"
)

const manifestFile = "manifest.yaml"

// Output describes one written USFM file.
type Output struct {
	File    string `yaml:"file"`
	Book    string `yaml:"book,omitempty"`
	Code    string `yaml:"code,omitempty"`
	Records int    `yaml:"records"`
	BLAKE3  string `yaml:"blake3"`
}

// Manifest records what a conversion run produced.
type Manifest struct {
	RunID       string        `yaml:"run_id"`
	Variant     types.Variant `yaml:"variant"`
	GeneratedAt time.Time     `yaml:"generated_at"`
	InputDir    string        `yaml:"input_dir"`
	Converted   int           `yaml:"converted"`
	Failed      int           `yaml:"failed"`
	Outputs     []Output      `yaml:"outputs"`
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Digest returns the hex BLAKE3-256 digest of content.
func Digest(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// writeOutput writes content to path and returns its Output entry.
func writeOutput(path, content string) (Output, error) {
	data := []byte(content)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Output{}, fmt.Errorf("writing %s: %w", path, err)
	}
	return Output{File: filepath.Base(path), BLAKE3: Digest(data)}, nil
}

func writeManifest(path string, variant types.Variant, inputDir string, r BatchResult) error {
	m := Manifest{
		RunID:       uuid.NewString(),
		Variant:     variant,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		InputDir:    inputDir,
		Converted:   r.Converted,
		Failed:      r.Failed,
		Outputs:     r.Outputs,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
