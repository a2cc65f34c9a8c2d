// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock/internal/cite"
	"github.com/paperdock/paperdock/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite [record-id]",
	Short: "Render APA 7 and MLA 9 citations",
	Long: `Cite prints both citation styles for a stored record, or for ad-hoc
bibliographic data passed through flags when no record ID is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCite,
}

func runCite(cmd *cobra.Command, args []string) error {
	var data types.CitationData

	if len(args) == 1 {
		cfg := loadConfig()
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		r, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		data = types.CitationData{
			Authors:     r.Authors,
			Title:       r.Title,
			Year:        r.Year,
			Institution: r.Institution,
			Type:        r.Label,
		}
	} else {
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			return fmt.Errorf("a record ID or --title is required")
		}
		authors, _ := cmd.Flags().GetStringSlice("authors")
		year, _ := cmd.Flags().GetString("year")
		institution, _ := cmd.Flags().GetString("institution")
		label, _ := cmd.Flags().GetString("type")

		data = types.CitationData{
			Authors:     authors,
			Title:       title,
			Year:        year,
			Institution: institution,
			Type:        types.ResearchLabel(label),
		}
	}

	out := cite.Generate(data)
	fmt.Printf("APA: %s\n", out.APA)
	fmt.Printf("MLA: %s\n", out.MLA)
	return nil
}

func init() {
	citeCmd.Flags().String("title", "", "title for an ad-hoc citation")
	citeCmd.Flags().StringSlice("authors", nil, "authors for an ad-hoc citation")
	citeCmd.Flags().String("year", "", "publication year for an ad-hoc citation")
	citeCmd.Flags().String("institution", "", "institution for an ad-hoc citation")
	citeCmd.Flags().String("type", "", "work type: practical_research, capstone, thesis, dissertation, other")

	rootCmd.AddCommand(citeCmd)
}
