// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps rendered study notes in a SQLite database so they
// can be looked up by book and searched by text after a run.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/usfm-notes/pkg/types"
)

// Store manages the notes index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index database at cfg.Path and creates
// the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultIndexMaxResult
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL UNIQUE,
			book TEXT,
			code TEXT,
			reference TEXT NOT NULL,
			line TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_code ON records(code)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts4(body)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
}

// Total returns the number of records written.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated
}

// Ingest upserts records keyed by their source filename in one
// transaction. Re-running a conversion replaces the stored line and its
// full-text entry.
func (s *Store) Ingest(ctx context.Context, records []types.Record) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IngestSummary
	for _, rec := range records {
		var rowid int64
		err := tx.QueryRowContext(ctx, `SELECT rowid FROM records WHERE source = ?`, rec.Source).Scan(&rowid)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx,
				`INSERT INTO records (source, book, code, reference, line) VALUES (?, ?, ?, ?, ?)`,
				rec.Source, rec.Book, rec.Code, rec.Reference, rec.Line)
			if err != nil {
				return summary, fmt.Errorf("inserting %s: %w", rec.Source, err)
			}
			if rowid, err = res.LastInsertId(); err != nil {
				return summary, fmt.Errorf("reading row id for %s: %w", rec.Source, err)
			}
			summary.Indexed++
		case err != nil:
			return summary, fmt.Errorf("looking up %s: %w", rec.Source, err)
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE records SET book = ?, code = ?, reference = ?, line = ? WHERE rowid = ?`,
				rec.Book, rec.Code, rec.Reference, rec.Line, rowid); err != nil {
				return summary, fmt.Errorf("updating %s: %w", rec.Source, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM records_fts WHERE docid = ?`, rowid); err != nil {
				return summary, fmt.Errorf("clearing text index for %s: %w", rec.Source, err)
			}
			summary.Updated++
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records_fts (docid, body) VALUES (?, ?)`, rowid, PlainText(rec.Line)); err != nil {
			return summary, fmt.Errorf("indexing text for %s: %w", rec.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// QueryOptions holds search parameters. Empty fields do not filter.
type QueryOptions struct {
	// Query is an FTS4 match expression over the note text.
	Query string

	// Code filters by USFM book code.
	Code string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Search returns records matching opts, ordered by book code, reference
// label and source filename.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT r.source, r.book, r.code, r.reference, r.line FROM records r`)
	if opts.Query != "" {
		qb.WriteString(` JOIN records_fts ON records_fts.docid = r.rowid WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(` WHERE 1=1`)
	}
	if opts.Code != "" {
		qb.WriteString(` AND r.code = ?`)
		args = append(args, strings.ToUpper(opts.Code))
	}
	qb.WriteString(` ORDER BY r.code, r.reference, r.source LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var (
			rec        types.Record
			book, code sql.NullString
		)
		if err := rows.Scan(&rec.Source, &book, &code, &rec.Reference, &rec.Line); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Book, rec.Code = book.String, code.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

var markerRe = regexp.MustCompile(`\\[a-z]+[0-9]*(?:\*| ?)`)

// PlainText strips USFM markers from a rendered line. Opening markers
// become word breaks; closing markers vanish.
func PlainText(line string) string {
	s := markerRe.ReplaceAllStringFunc(line, func(m string) string {
		if strings.HasSuffix(m, "*") {
			return ""
		}
		return " "
	})
	return strings.Join(strings.Fields(s), " ")
}
