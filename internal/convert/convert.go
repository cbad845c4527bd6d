// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns exported study note and key-term documents into
// USFM files.
//
// A run enumerates the input directory in filename order, renders each
// document with a Processor, and writes either one file per book (study
// notes) or one combined dictionary (key terms). A document that cannot
// be read or decoded is reported and skipped; only failures to create or
// write outputs end the run.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pdiddy/usfm-notes/internal/sources"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

const (
	studyNotesSuffix = "_StudyNotes.SFM"
	progressEvery    = 10
)

// Options controls source enumeration and run bookkeeping.
type Options struct {
	// Pattern selects source files inside the input directory.
	Pattern string

	// Manifest writes a manifest.yaml describing the outputs.
	Manifest bool
}

func (o Options) pattern() string {
	if o.Pattern == "" {
		return types.DefaultInputPattern
	}
	return o.Pattern
}

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// Outputs lists the files written, in write order.
	Outputs []Output

	// Records holds every rendered record in output order.
	Records []types.Record
}

// Total returns the number of source documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document was skipped.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// processAll renders every source under dir, reporting progress and
// per-file failures to w. Records are returned in source order.
func processAll(p *Processor, dir string, opts Options, w io.Writer) ([]types.Record, BatchResult, error) {
	paths, err := sources.List(dir, opts.pattern())
	if err != nil {
		return nil, BatchResult{}, err
	}
	fmt.Fprintf(w, "Found %d %s documents to process\n", len(paths), p.Variant())

	var (
		result  BatchResult
		records = make([]types.Record, 0, len(paths))
	)
	for i, path := range paths {
		if i%progressEvery == 0 {
			fmt.Fprintf(w, "Processing file %d/%d\n", i+1, len(paths))
		}
		rec, err := p.Process(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(path), err)
			result.Failed++
			continue
		}
		records = append(records, rec)
		result.Converted++
	}
	return records, result, nil
}

// StudyNotes converts every study note in cfg.InputDir and writes one
// <CODE>_StudyNotes.SFM per book to cfg.OutputDir. Notes are grouped by
// the book name in their filename and sorted by reference label. Books
// whose names share a code (every unrecognized book maps to UNK) write to
// the same file, and the book seen last wins.
func StudyNotes(p *Processor, cfg types.StudyNotesConfig, opts Options, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	records, result, err := processAll(p, cfg.InputDir, opts, w)
	if err != nil {
		return result, err
	}

	var order []string
	byBook := make(map[string][]types.Record)
	for _, rec := range records {
		if _, ok := byBook[rec.Book]; !ok {
			order = append(order, rec.Book)
		}
		byBook[rec.Book] = append(byBook[rec.Book], rec)
	}

	written := make(map[string]string)
	for _, book := range order {
		notes := byBook[book]
		slices.SortStableFunc(notes, func(a, b types.Record) int {
			switch {
			case a.Less(b):
				return -1
			case b.Less(a):
				return 1
			}
			return 0
		})

		code := notes[0].Code
		name := code + studyNotesSuffix
		if prev, ok := written[name]; ok {
			slog.Warn("output file overwritten by another book", "file", name, "previous", prev, "book", book)
		}
		written[name] = book

		var b strings.Builder
		b.WriteString(StudyNotesHeader(code, book))
		for _, n := range notes {
			b.WriteString(n.Line)
		}

		out, err := writeOutput(filepath.Join(cfg.OutputDir, name), b.String())
		if err != nil {
			return result, err
		}
		out.Book, out.Code, out.Records = book, code, len(notes)
		result.Outputs = append(result.Outputs, out)
		result.Records = append(result.Records, notes...)

		fmt.Fprintf(w, "converted: %s (%d study notes)\n", name, len(notes))
	}

	printSummary(w, result)

	if opts.Manifest {
		path := filepath.Join(cfg.OutputDir, manifestFile)
		if err := writeManifest(path, types.VariantStudyNotes, cfg.InputDir, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

// KeyTerms converts every key-term document in cfg.InputDir into one
// dictionary file at cfg.OutputFile, in source filename order.
func KeyTerms(p *Processor, cfg types.KeyTermsConfig, opts Options, w io.Writer) (BatchResult, error) {
	if dir := filepath.Dir(cfg.OutputFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return BatchResult{}, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	records, result, err := processAll(p, cfg.InputDir, opts, w)
	if err != nil {
		return result, err
	}

	var b strings.Builder
	b.WriteString(KeyTermsHeader)
	for _, rec := range records {
		b.WriteString(rec.Line)
	}

	out, err := writeOutput(cfg.OutputFile, b.String())
	if err != nil {
		return result, err
	}
	out.Records = len(records)
	result.Outputs = append(result.Outputs, out)
	result.Records = records

	fmt.Fprintf(w, "converted: %s (%d entries)\n", filepath.Base(cfg.OutputFile), len(records))
	printSummary(w, result)

	if opts.Manifest {
		path := strings.TrimSuffix(cfg.OutputFile, filepath.Ext(cfg.OutputFile)) + ".manifest.yaml"
		if err := writeManifest(path, types.VariantKeyTerms, cfg.InputDir, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func printSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d), %d file(s) written\n",
		r.Converted, r.Failed, r.Total(), len(r.Outputs))
}
