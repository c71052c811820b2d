package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/thai"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Filter columns are denormalized from the record; data_json holds the full
// reference.
const selectRefFields = `data_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS refs (
			id TEXT PRIMARY KEY,
			doi TEXT,
			type TEXT NOT NULL,
			pub_year INTEGER,
			title TEXT NOT NULL,
			journal_name TEXT,
			authors_text TEXT NOT NULL,
			tags_text TEXT,
			source_type TEXT,
			data_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_refs_year ON refs(pub_year);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			id,
			title,
			abstract,
			authors_text,
			journal_name,
			tags_text,
			pub_year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	refs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	return len(refs), d.Replace(refs)
}

// Replace swaps the cached library for refs in one transaction.
func (d *DB) Replace(refs []reference.Reference) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM refs_fts"); err != nil {
		return fmt.Errorf("clearing refs_fts table: %w", err)
	}

	refsStmt, err := tx.Prepare(`
		INSERT INTO refs (
			id, doi, type, pub_year, title, journal_name,
			authors_text, tags_text, source_type, data_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO refs_fts (id, title, abstract, authors_text, journal_name, tags_text, pub_year)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, ref := range refs {
		data, err := json.Marshal(ref)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", ref.ID, err)
		}

		authorsText := strings.Join(ref.Authors, ", ")
		tagsText := strings.Join(ref.Tags, ", ")

		_, err = refsStmt.Exec(
			ref.ID, nullableStringValue(ref.DOI), string(ref.Type), nullableYear(ref.Year),
			ref.Title, nullableStringValue(ref.JournalName),
			authorsText, nullableStringValue(tagsText), nullableStringValue(ref.Source.Type),
			string(data),
		)
		if err != nil {
			return fmt.Errorf("inserting ref %s: %w", ref.ID, err)
		}

		_, err = ftsStmt.Exec(ref.ID, ref.Title, ref.Abstract, authorsText, ref.JournalName, tagsText, ref.Year)
		if err != nil {
			return fmt.Errorf("inserting fts for %s: %w", ref.ID, err)
		}
	}

	return tx.Commit()
}

// GetByID retrieves a reference by its ID. It returns nil when absent.
func (d *DB) GetByID(id string) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT `+selectRefFields+` FROM refs WHERE id = ?`, id)
	return scanReference(row)
}

// GetByDOI retrieves a reference by DOI, ignoring case. It returns nil when absent.
func (d *DB) GetByDOI(doi string) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT `+selectRefFields+` FROM refs WHERE doi = ? COLLATE NOCASE LIMIT 1`, strings.TrimSpace(doi))
	return scanReference(row)
}

// Search performs a keyword search across titles, abstracts, authors,
// journals and tags.
func (d *DB) Search(query string, limit int) ([]reference.Reference, error) {
	return d.SearchWithFilters(SearchFilters{Keyword: query}, limit)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword  string         // General keyword search across all fields
	Authors  []string       // Author names to search for (AND logic, prefix matching)
	YearFrom int            // Minimum publication year (0 = no minimum)
	YearTo   int            // Maximum publication year (0 = no maximum)
	Title    string         // Search in title only
	Journal  string         // Filter by journal or proceedings (SQL LIKE, case-insensitive)
	DOI      string         // Exact DOI match
	Type     reference.Type // Exact type match
	Tag      string         // Exact tag match
}

// SearchWithFilters performs a search with multiple optional filters and
// returns references matching all of them, ordered by ID.
//
// FTS5's default tokenizer cannot segment Thai, which is written without
// spaces, so text filters containing Thai use substring matching instead.
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]reference.Reference, error) {
	var ftsTerms []string
	var where []string
	var args []any

	if kw := strings.TrimSpace(filters.Keyword); kw != "" {
		if thai.IsThai(kw) {
			where = append(where, "(title LIKE ? OR authors_text LIKE ? OR journal_name LIKE ? OR tags_text LIKE ?)")
			pattern := likePattern(kw)
			args = append(args, pattern, pattern, pattern, pattern)
		} else {
			ftsTerms = append(ftsTerms, prepareFTSQuery(kw))
		}
	}
	if title := strings.TrimSpace(filters.Title); title != "" {
		if thai.IsThai(title) {
			where = append(where, "title LIKE ?")
			args = append(args, likePattern(title))
		} else {
			ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(title))
		}
	}
	for _, author := range filters.Authors {
		author = strings.TrimSpace(author)
		switch {
		case author == "":
		case thai.IsThai(author):
			where = append(where, "authors_text LIKE ?")
			args = append(args, likePattern(author))
		default:
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(author))
		}
	}

	query := `SELECT ` + selectRefFields + ` FROM refs WHERE 1=1`
	if len(ftsTerms) > 0 {
		query += ` AND id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)`
		args = append([]any{strings.Join(ftsTerms, " AND ")}, args...)
	}
	for _, clause := range where {
		query += " AND " + clause
	}

	if filters.YearFrom > 0 {
		query += " AND pub_year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND pub_year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Journal != "" {
		query += " AND journal_name LIKE ?"
		args = append(args, likePattern(filters.Journal))
	}
	if filters.DOI != "" {
		query += " AND doi = ? COLLATE NOCASE"
		args = append(args, filters.DOI)
	}
	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filters.Type))
	}
	if filters.Tag != "" {
		query += " AND EXISTS (SELECT 1 FROM json_each(data_json, '$.tags') WHERE value = ?)"
		args = append(args, filters.Tag)
	}

	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching.
// It adds a wildcard (*) to enable fuzzy matching (e.g., "Tim" matches "Timothy").
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	var terms []string
	for _, part := range strings.Fields(author) {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}

// likePattern wraps s for a substring LIKE match.
func likePattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}

// ListAll returns all references ordered by ID, optionally limited.
func (d *DB) ListAll(limit int) ([]reference.Reference, error) {
	return d.SearchWithFilters(SearchFilters{}, limit)
}

// Count returns the total number of references.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// CountByType returns the number of references of each type present.
func (d *DB) CountByType() (map[reference.Type]int, error) {
	rows, err := d.db.Query("SELECT type, COUNT(*) FROM refs GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("counting by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[reference.Type]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[reference.Type(t)] = n
	}
	return counts, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanReference(s scanner) (*reference.Reference, error) {
	var data string
	if err := s.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var ref reference.Reference
	if err := json.Unmarshal([]byte(data), &ref); err != nil {
		return nil, fmt.Errorf("parsing stored reference: %w", err)
	}
	return &ref, nil
}

func scanReferences(rows *sql.Rows) ([]reference.Reference, error) {
	var refs []reference.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, *ref)
		}
	}
	return refs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullableYear stores numeric years as integers so range filters work.
func nullableYear(year string) sql.NullInt64 {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	// FTS5 uses double quotes for phrase matching
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,/") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
