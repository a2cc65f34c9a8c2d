// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock/internal/repo"
	"github.com/paperdock/paperdock/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the repository",
	Long: `Search runs full-text search over titles, abstracts, keywords, and
authors, with structured filters for strand, label, academic year, and
access level. Without a query it lists the newest records.

Archived records are excluded unless --include-archived is given.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func searchOptsFromFlags(cmd *cobra.Command, args []string) (repo.SearchOptions, error) {
	strand, _ := cmd.Flags().GetString("strand")
	label, _ := cmd.Flags().GetString("label")
	academicYear, _ := cmd.Flags().GetString("academic-year")
	access, _ := cmd.Flags().GetString("access")
	includeArchived, _ := cmd.Flags().GetBool("include-archived")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	if access != "" && !types.ValidAccessLevel(access) {
		return repo.SearchOptions{}, fmt.Errorf("invalid access level %q: use public, authenticated, or restricted", access)
	}

	switch repo.SortOrder(sortBy) {
	case repo.SortRelevance, repo.SortDate, repo.SortViews, "":
	default:
		return repo.SearchOptions{}, fmt.Errorf("invalid sort order %q: use relevance, date, or views", sortBy)
	}

	return repo.SearchOptions{
		Query:           strings.Join(args, " "),
		Strand:          types.ResearchStrand(strand),
		Label:           types.ResearchLabel(label),
		AcademicYear:    academicYear,
		AccessLevel:     types.AccessLevel(access),
		IncludeArchived: includeArchived,
		SortBy:          repo.SortOrder(sortBy),
		MaxResults:      limit,
	}, nil
}

func formatSearchOutput(results []types.Research, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-42s  %-6s  %-6s  %s\n",
		"ID", "Title", "Year", "Strand", "Views")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range results {
		title := r.Title
		if len(title) > 42 {
			title = title[:39] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-42s  %-6s  %-6s  %d\n",
			r.ID, title, r.Year, r.Strand, r.Views)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func init() {
	searchCmd.Flags().String("strand", "", "filter by strand: STEM, HUMSS, ABM, ICT, GAS, Other")
	searchCmd.Flags().String("label", "", "filter by work type: practical_research, capstone, thesis, dissertation, other")
	searchCmd.Flags().String("academic-year", "", "filter by school-year tag (e.g. 2023-2024)")
	searchCmd.Flags().String("access", "", "filter by access level")
	searchCmd.Flags().Bool("include-archived", false, "also return archived records")
	searchCmd.Flags().String("sort", "", "sort order: relevance, date, or views")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
