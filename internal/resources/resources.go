// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resources builds the key-term lookup table that resolves
// resourceReference marks. Each key-term document contributes one entry:
// its referenceId maps to its name.
package resources

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/usfm-notes/internal/sources"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

// Map maps a key-term referenceId to its display name.
type Map map[string]string

// Has reports whether id names a known key term.
func (m Map) Has(id string) bool {
	_, ok := m[id]
	return ok
}

// Name returns the display name for id, or "".
func (m Map) Name(id string) string {
	return m[id]
}

// IDs returns the map keys in sorted order.
func (m Map) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuildResult counts the files seen while building a Map.
type BuildResult struct {
	Files   int
	Added   int
	Skipped int
	Failed  int
}

// termDocument is the subset of a key-term document the map needs.
type termDocument struct {
	ReferenceID types.ReferenceID `json:"referenceId"`
	Name        string            `json:"name"`
}

// Build reads every file under dir matching pattern and returns the
// resulting Map. Files that cannot be read or decoded are skipped with a
// warning; documents with an empty referenceId or name are skipped
// silently. When two documents share a referenceId the one whose path
// sorts last wins. Only a failure to list dir is returned as an error.
func Build(dir, pattern string) (Map, BuildResult, error) {
	paths, err := sources.List(dir, pattern)
	if err != nil {
		return nil, BuildResult{}, err
	}

	m := make(Map)
	result := BuildResult{Files: len(paths)}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable key-term document", "file", path, "error", err)
			result.Failed++
			continue
		}

		var doc termDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			slog.Warn("skipping malformed key-term document", "file", path, "error", err)
			result.Failed++
			continue
		}

		id := string(doc.ReferenceID)
		if id == "" || doc.Name == "" {
			result.Skipped++
			continue
		}
		if prev, ok := m[id]; ok && prev != doc.Name {
			slog.Debug("duplicate key-term id", "id", id, "previous", prev, "name", doc.Name, "file", filepath.Base(path))
		}
		m[id] = doc.Name
		result.Added++
	}

	return m, result, nil
}

// exportEntry is one row of the YAML export.
type exportEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ExportYAML writes the map to path as a YAML list sorted by id.
func (m Map) ExportYAML(path string) error {
	entries := make([]exportEntry, 0, len(m))
	for _, id := range m.IDs() {
		entries = append(entries, exportEntry{ID: id, Name: m[id]})
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling resource map: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
