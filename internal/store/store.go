// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists reviewed katakana names and the search history in
// a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litscorer/internal/kana"
	"github.com/pdiddy/litscorer/pkg/types"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "litscorer.db"

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when an author has no confirmation.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.Path, creating parent
// directories and the schema as needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS confirmations (
			author TEXT PRIMARY KEY,
			kana_family TEXT NOT NULL,
			kana_given TEXT NOT NULL,
			note TEXT,
			confirmed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			hit_count INTEGER NOT NULL,
			medline_hits INTEGER NOT NULL,
			fetched INTEGER NOT NULL,
			unique_articles INTEGER NOT NULL,
			relaxed INTEGER NOT NULL,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_timestamp ON searches(timestamp)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

var (
	builder          = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	confirmationCols = []string{"author", "kana_family", "kana_given", "note", "confirmed_at"}
	searchRecordCols = []string{"id", "query", "hit_count", "medline_hits", "fetched", "unique_articles", "relaxed", "timestamp"}
)

// exec runs a built statement.
func (s *Store) exec(ctx context.Context, q sq.Sqlizer) (sql.Result, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building statement: %w", err)
	}
	return s.db.ExecContext(ctx, query, args...)
}

// query runs a built select.
func (s *Store) query(ctx context.Context, q sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

// Confirm records a reviewed katakana for c.Author, replacing any earlier
// confirmation. A zero ConfirmedAt is set to the current time.
func (s *Store) Confirm(ctx context.Context, c types.Confirmation) error {
	c.Author = strings.TrimSpace(c.Author)
	if c.Author == "" {
		return errors.New("confirmation requires an author")
	}
	if c.KanaFamily == "" && c.KanaGiven == "" {
		return fmt.Errorf("confirmation for %q has no katakana", c.Author)
	}
	if c.ConfirmedAt.IsZero() {
		c.ConfirmedAt = time.Now().UTC()
	}

	insert := builder.Insert("confirmations").
		Columns(confirmationCols...).
		Values(c.Author, c.KanaFamily, c.KanaGiven, c.Note, c.ConfirmedAt.UTC().Format(timeLayout)).
		Suffix(`ON CONFLICT(author) DO UPDATE SET
			kana_family=excluded.kana_family, kana_given=excluded.kana_given,
			note=excluded.note, confirmed_at=excluded.confirmed_at`)
	if _, err := s.exec(ctx, insert); err != nil {
		return fmt.Errorf("saving confirmation for %q: %w", c.Author, err)
	}
	return nil
}

// Lookup returns the confirmation for author, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, author string) (types.Confirmation, error) {
	list, err := s.confirmations(ctx, sq.Eq{"author": strings.TrimSpace(author)})
	if err != nil {
		return types.Confirmation{}, fmt.Errorf("reading confirmation for %q: %w", author, err)
	}
	if len(list) == 0 {
		return types.Confirmation{}, fmt.Errorf("confirmation for %q: %w", author, ErrNotFound)
	}
	return list[0], nil
}

// List returns every confirmation ordered by author.
func (s *Store) List(ctx context.Context) ([]types.Confirmation, error) {
	list, err := s.confirmations(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing confirmations: %w", err)
	}
	return list, nil
}

func (s *Store) confirmations(ctx context.Context, where sq.Sqlizer) ([]types.Confirmation, error) {
	sel := builder.Select(confirmationCols...).From("confirmations").OrderBy("author")
	if where != nil {
		sel = sel.Where(where)
	}
	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Confirmation
	for rows.Next() {
		var (
			c    types.Confirmation
			note sql.NullString
			ts   string
		)
		if err := rows.Scan(&c.Author, &c.KanaFamily, &c.KanaGiven, &note, &ts); err != nil {
			return nil, fmt.Errorf("scanning confirmation: %w", err)
		}
		c.Note = note.String
		at, err := time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing confirmed_at of %s: %w", c.Author, err)
		}
		c.ConfirmedAt = at
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes the confirmation for author, returning ErrNotFound when
// there was none.
func (s *Store) Delete(ctx context.Context, author string) error {
	res, err := s.exec(ctx, builder.Delete("confirmations").Where(sq.Eq{"author": strings.TrimSpace(author)}))
	if err != nil {
		return fmt.Errorf("deleting confirmation for %q: %w", author, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting confirmation for %q: %w", author, err)
	}
	if n == 0 {
		return fmt.Errorf("confirmation for %q: %w", author, ErrNotFound)
	}
	return nil
}

// ConfirmedNames returns every confirmation keyed by author as a katakana
// name, ready for authors.Aggregate.
func (s *Store) ConfirmedNames(ctx context.Context) (map[string]kana.Name, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]kana.Name, len(list))
	for _, c := range list {
		out[c.Author] = kana.Name{Family: c.KanaFamily, Given: c.KanaGiven, Full: c.KanaName()}
	}
	return out, nil
}

// RecordSearch appends r to the search history and returns its ID. A zero
// Timestamp is set to the current time.
func (s *Store) RecordSearch(ctx context.Context, r types.SearchRecord) (int64, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	insert := builder.Insert("searches").
		Columns(searchRecordCols[1:]...).
		Values(r.Query, r.HitCount, r.MedlineHits, r.Fetched, r.UniqueArticles, r.Relaxed,
			r.Timestamp.UTC().Format(timeLayout))
	res, err := s.exec(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("recording search: %w", err)
	}
	return res.LastInsertId()
}

// Searches returns up to limit history entries, newest first. A limit of
// zero or less returns all entries.
func (s *Store) Searches(ctx context.Context, limit int) ([]types.SearchRecord, error) {
	sel := builder.Select(searchRecordCols...).From("searches").OrderBy("timestamp DESC", "id DESC")
	if limit > 0 {
		sel = sel.Limit(uint64(limit))
	}

	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	defer rows.Close()

	var out []types.SearchRecord
	for rows.Next() {
		var (
			r  types.SearchRecord
			ts string
		)
		if err := rows.Scan(&r.ID, &r.Query, &r.HitCount, &r.MedlineHits, &r.Fetched,
			&r.UniqueArticles, &r.Relaxed, &ts); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		at, err := time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of search %d: %w", r.ID, err)
		}
		r.Timestamp = at
		out = append(out, r)
	}
	return out, rows.Err()
}
