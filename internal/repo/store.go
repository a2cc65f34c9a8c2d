// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repo persists research records in a SQLite database with FTS5
// full-text search, and carries the moderation (access level, archival),
// Q&A, and statistics operations built on top of it.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/paperdock/paperdock/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "repository.db"
)

// ErrNotFound reports that no record matches the requested ID.
var ErrNotFound = errors.New("research record not found")

// Store manages the repository SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the repository database at
// DataDir/index/repository.db, creating the schema if needed.
func NewStore(cfg types.RepositoryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
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
		`CREATE TABLE IF NOT EXISTS researches (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			abstract TEXT,
			keywords TEXT,
			authors TEXT,
			year TEXT,
			academic_year TEXT,
			label TEXT,
			strand TEXT,
			institution TEXT,
			access_level TEXT NOT NULL DEFAULT 'public',
			abstract_visible INTEGER NOT NULL DEFAULT 1,
			archived INTEGER NOT NULL DEFAULT 0,
			file_path TEXT,
			file_name TEXT,
			views INTEGER NOT NULL DEFAULT 0,
			citation_apa TEXT,
			citation_mla TEXT,
			uploaded_by TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_researches_strand ON researches(strand)`,
		`CREATE INDEX IF NOT EXISTS idx_researches_label ON researches(label)`,
		`CREATE TABLE IF NOT EXISTS questions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			research_id TEXT NOT NULL REFERENCES researches(id),
			user_name TEXT NOT NULL,
			content TEXT NOT NULL,
			upvotes INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			question_id TEXT NOT NULL REFERENCES questions(id),
			user_name TEXT NOT NULL,
			content TEXT NOT NULL,
			upvotes INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_research ON questions(research_id)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='researches_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE researches_fts USING fts5(
				title, abstract, keywords, authors,
				content=researches, content_rowid=rowid)`,
			`CREATE TRIGGER researches_ai AFTER INSERT ON researches BEGIN
				INSERT INTO researches_fts(rowid, title, abstract, keywords, authors)
				VALUES (new.rowid, new.title, new.abstract, new.keywords, new.authors);
			END`,
			`CREATE TRIGGER researches_ad AFTER DELETE ON researches BEGIN
				INSERT INTO researches_fts(researches_fts, rowid, title, abstract, keywords, authors)
				VALUES('delete', old.rowid, old.title, old.abstract, old.keywords, old.authors);
			END`,
			`CREATE TRIGGER researches_au AFTER UPDATE ON researches BEGIN
				INSERT INTO researches_fts(researches_fts, rowid, title, abstract, keywords, authors)
				VALUES('delete', old.rowid, old.title, old.abstract, old.keywords, old.authors);
				INSERT INTO researches_fts(rowid, title, abstract, keywords, authors)
				VALUES (new.rowid, new.title, new.abstract, new.keywords, new.authors);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// researchColumns is the SELECT column list matching scanResearch.
const researchColumns = `id, title, abstract, keywords, authors, year,
	academic_year, label, strand, institution, access_level,
	abstract_visible, archived, file_path, file_name, views,
	citation_apa, citation_mla, uploaded_by, created_at, updated_at`

// Insert stores a new research record. An empty ID gets a fresh UUID and
// an empty access level defaults to public; both are written back to r
// along with the assigned timestamps.
func (s *Store) Insert(ctx context.Context, r *types.Research) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.AccessLevel == "" {
		r.AccessLevel = types.AccessPublic
	}

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	keywords, authors, err := encodeLists(r)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO researches (
			id, title, abstract, keywords, authors, year, academic_year,
			label, strand, institution, access_level, abstract_visible,
			archived, file_path, file_name, views, citation_apa,
			citation_mla, uploaded_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Abstract, keywords, authors, r.Year, r.AcademicYear,
		string(r.Label), string(r.Strand), r.Institution, string(r.AccessLevel),
		boolInt(r.AbstractVisible), boolInt(r.Archived), r.FilePath, r.FileName,
		r.Views, r.CitationAPA, r.CitationMLA, r.UploadedBy,
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting research %s: %w", r.ID, err)
	}
	return nil
}

// Update rewrites the editable fields of an existing record and refreshes
// its updated_at timestamp.
func (s *Store) Update(ctx context.Context, r *types.Research) error {
	r.UpdatedAt = time.Now().UTC()

	keywords, authors, err := encodeLists(r)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE researches SET
			title = ?, abstract = ?, keywords = ?, authors = ?, year = ?,
			academic_year = ?, label = ?, strand = ?, institution = ?,
			access_level = ?, abstract_visible = ?, archived = ?,
			citation_apa = ?, citation_mla = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.Abstract, keywords, authors, r.Year, r.AcademicYear,
		string(r.Label), string(r.Strand), r.Institution, string(r.AccessLevel),
		boolInt(r.AbstractVisible), boolInt(r.Archived),
		r.CitationAPA, r.CitationMLA, formatTime(r.UpdatedAt), r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating research %s: %w", r.ID, err)
	}
	return requireRow(res, r.ID)
}

// Get returns one record by ID.
func (s *Store) Get(ctx context.Context, id string) (*types.Research, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+researchColumns+` FROM researches WHERE id = ?`, id)

	r, err := scanResearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading research %s: %w", id, err)
	}
	return r, nil
}

// RecordView increments the view counter for a record.
func (s *Store) RecordView(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE researches SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("recording view for %s: %w", id, err)
	}
	return requireRow(res, id)
}

// SetAccessLevel moderates who may read a record's full text.
func (s *Store) SetAccessLevel(ctx context.Context, id string, level types.AccessLevel) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE researches SET access_level = ?, updated_at = ? WHERE id = ?`,
		string(level), formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("setting access level for %s: %w", id, err)
	}
	return requireRow(res, id)
}

// SetArchived hides or restores a record in default search results.
func (s *Store) SetArchived(ctx context.Context, id string, archived bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE researches SET archived = ?, updated_at = ? WHERE id = ?`,
		boolInt(archived), formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", id, err)
	}
	return requireRow(res, id)
}

// --- helpers ---

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResearch(row rowScanner) (*types.Research, error) {
	var (
		r                  types.Research
		keywords, authors  sql.NullString
		label, strand      sql.NullString
		abstractVisible    int
		archived           int
		created, updated   string
		abstract, year     sql.NullString
		academicYear       sql.NullString
		institution        sql.NullString
		filePath, fileName sql.NullString
		apa, mla           sql.NullString
		uploadedBy         sql.NullString
		accessLevel        string
	)

	err := row.Scan(&r.ID, &r.Title, &abstract, &keywords, &authors, &year,
		&academicYear, &label, &strand, &institution, &accessLevel,
		&abstractVisible, &archived, &filePath, &fileName, &r.Views,
		&apa, &mla, &uploadedBy, &created, &updated)
	if err != nil {
		return nil, err
	}

	r.Abstract = abstract.String
	r.Year = year.String
	r.AcademicYear = academicYear.String
	r.Label = types.ResearchLabel(label.String)
	r.Strand = types.ResearchStrand(strand.String)
	r.Institution = institution.String
	r.AccessLevel = types.AccessLevel(accessLevel)
	r.AbstractVisible = abstractVisible != 0
	r.Archived = archived != 0
	r.FilePath = filePath.String
	r.FileName = fileName.String
	r.CitationAPA = apa.String
	r.CitationMLA = mla.String
	r.UploadedBy = uploadedBy.String

	if keywords.String != "" {
		if err := json.Unmarshal([]byte(keywords.String), &r.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords: %w", err)
		}
	}
	if authors.String != "" {
		if err := json.Unmarshal([]byte(authors.String), &r.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors: %w", err)
		}
	}

	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &r, nil
}

func encodeLists(r *types.Research) (keywords, authors string, err error) {
	kw, err := json.Marshal(r.Keywords)
	if err != nil {
		return "", "", fmt.Errorf("encoding keywords: %w", err)
	}
	au, err := json.Marshal(r.Authors)
	if err != nil {
		return "", "", fmt.Errorf("encoding authors: %w", err)
	}
	return string(kw), string(au), nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
