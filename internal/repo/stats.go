// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"fmt"

	"github.com/paperdock/paperdock/pkg/types"
)

// Stats summarizes the repository contents.
type Stats struct {
	// Papers counts non-archived records.
	Papers int `json:"papers" yaml:"papers"`

	// Researchers counts distinct author names across all records.
	Researchers int `json:"researchers" yaml:"researchers"`

	// TotalViews sums the view counters.
	TotalViews int `json:"total_views" yaml:"total_views"`

	// ByStrand counts non-archived records per strand.
	ByStrand map[types.ResearchStrand]int `json:"by_strand" yaml:"by_strand"`
}

// Stats computes repository-wide counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), coalesce(sum(views), 0) FROM researches WHERE archived = 0`,
	).Scan(&st.Papers, &st.TotalViews)
	if err != nil {
		return Stats{}, fmt.Errorf("counting researches: %w", err)
	}

	// Author lists are stored as JSON arrays; json_each flattens them so
	// distinct names can be counted across records.
	err = s.db.QueryRowContext(ctx,
		`SELECT count(DISTINCT value)
		 FROM researches, json_each(researches.authors)
		 WHERE researches.archived = 0`,
	).Scan(&st.Researchers)
	if err != nil {
		return Stats{}, fmt.Errorf("counting researchers: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT strand, count(*) FROM researches
		 WHERE archived = 0 AND strand != ''
		 GROUP BY strand`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting strands: %w", err)
	}
	defer rows.Close()

	st.ByStrand = make(map[types.ResearchStrand]int)
	for rows.Next() {
		var (
			strand string
			n      int
		)
		if err := rows.Scan(&strand, &n); err != nil {
			return Stats{}, fmt.Errorf("scanning strand count: %w", err)
		}
		st.ByStrand[types.ResearchStrand(strand)] = n
	}
	return st, rows.Err()
}
