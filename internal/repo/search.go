// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"fmt"

	"github.com/paperdock/paperdock/pkg/types"
)

// SortOrder selects how search results are ranked.
type SortOrder string

const (
	// SortRelevance orders by FTS5 rank. With no query it falls back to
	// newest first.
	SortRelevance SortOrder = "relevance"
	SortDate      SortOrder = "date"
	SortViews     SortOrder = "views"
)

// SearchOptions narrows and orders a repository search. The zero value
// lists the newest non-archived records.
type SearchOptions struct {
	// Query is an FTS5 match expression over title, abstract, keywords,
	// and authors. Empty means no text filter.
	Query string

	// Strand, Label, AcademicYear, and AccessLevel filter on equality
	// when non-empty.
	Strand       types.ResearchStrand
	Label        types.ResearchLabel
	AcademicYear string
	AccessLevel  types.AccessLevel

	// IncludeArchived also returns archived records.
	IncludeArchived bool

	SortBy SortOrder

	// MaxResults caps the result count. Zero uses the store default.
	MaxResults int
}

// Search returns records matching opts.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]types.Research, error) {
	var (
		where []string
		args  []any
	)

	query := `SELECT ` + qualifyColumns("r") + ` FROM researches r`
	if opts.Query != "" {
		query += ` JOIN researches_fts f ON f.rowid = r.rowid`
		where = append(where, `researches_fts MATCH ?`)
		args = append(args, opts.Query)
	}

	if !opts.IncludeArchived {
		where = append(where, `r.archived = 0`)
	}
	if opts.Strand != "" {
		where = append(where, `r.strand = ?`)
		args = append(args, string(opts.Strand))
	}
	if opts.Label != "" {
		where = append(where, `r.label = ?`)
		args = append(args, string(opts.Label))
	}
	if opts.AcademicYear != "" {
		where = append(where, `r.academic_year = ?`)
		args = append(args, opts.AcademicYear)
	}
	if opts.AccessLevel != "" {
		where = append(where, `r.access_level = ?`)
		args = append(args, string(opts.AccessLevel))
	}

	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}

	switch opts.SortBy {
	case SortDate:
		query += ` ORDER BY r.created_at DESC`
	case SortViews:
		query += ` ORDER BY r.views DESC, r.created_at DESC`
	default:
		if opts.Query != "" {
			query += ` ORDER BY f.rank`
		} else {
			query += ` ORDER BY r.created_at DESC`
		}
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching researches: %w", err)
	}
	defer rows.Close()

	var results []types.Research
	for rows.Next() {
		r, err := scanResearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

// qualifyColumns prefixes every column in researchColumns with the table
// alias so the FTS join stays unambiguous.
func qualifyColumns(alias string) string {
	cols := []string{
		"id", "title", "abstract", "keywords", "authors", "year",
		"academic_year", "label", "strand", "institution", "access_level",
		"abstract_visible", "archived", "file_path", "file_name", "views",
		"citation_apa", "citation_mla", "uploaded_by", "created_at", "updated_at",
	}
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}
