// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock/internal/extract"
	"github.com/paperdock/paperdock/internal/ingest"
	"github.com/paperdock/paperdock/pkg/types"
)

var addCmd = &cobra.Command{
	Use:   "add [files...]",
	Short: "Ingest documents into the repository",
	Long: `Add extracts text from each document (PDF text layer where present,
OCR for scanned pages and images), recovers title, abstract, keywords,
authors, and year heuristically, renders APA and MLA citations, and files
the original under the repository data directory.

Metadata flags override the extracted values. With several files the
same overrides apply to each and a batch summary is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ov, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := ingest.NewService(newExtractor(cfg), store, cfg.Repository)
	ctx := context.Background()

	if len(args) > 1 {
		result := svc.AddBatch(ctx, args, ov, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed to ingest", result.Failed)
		}
		return nil
	}

	r, err := svc.Add(ctx, args[0], ov, progressToStderr)
	if err != nil {
		return err
	}

	fmt.Printf("added: %s\n", r.ID)
	printRecordSummary(r)
	return nil
}

// overridesFromFlags collects the metadata override flags shared by add.
func overridesFromFlags(cmd *cobra.Command) (ingest.Overrides, error) {
	title, _ := cmd.Flags().GetString("title")
	abstract, _ := cmd.Flags().GetString("abstract")
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	authors, _ := cmd.Flags().GetStringSlice("authors")
	year, _ := cmd.Flags().GetString("year")
	academicYear, _ := cmd.Flags().GetString("academic-year")
	label, _ := cmd.Flags().GetString("label")
	strand, _ := cmd.Flags().GetString("strand")
	institution, _ := cmd.Flags().GetString("institution")
	access, _ := cmd.Flags().GetString("access")
	uploadedBy, _ := cmd.Flags().GetString("uploaded-by")

	if access != "" && !types.ValidAccessLevel(access) {
		return ingest.Overrides{}, fmt.Errorf("invalid access level %q: use public, authenticated, or restricted", access)
	}

	return ingest.Overrides{
		Title:        title,
		Abstract:     abstract,
		Keywords:     keywords,
		Authors:      authors,
		Year:         year,
		AcademicYear: academicYear,
		Label:        types.ResearchLabel(label),
		Strand:       types.ResearchStrand(strand),
		Institution:  institution,
		AccessLevel:  types.AccessLevel(access),
		UploadedBy:   uploadedBy,
	}, nil
}

// progressToStderr reports extraction progress without polluting stdout.
func progressToStderr(p extract.Progress) {
	fmt.Fprintf(os.Stderr, "%3.0f%%  %s\n", p.Percent, p.Status)
}

// printRecordSummary prints the fields an operator most often wants to
// verify right after ingesting.
func printRecordSummary(r *types.Research) {
	fmt.Printf("  title:    %s\n", r.Title)
	if len(r.Authors) > 0 {
		fmt.Printf("  authors:  %v\n", r.Authors)
	}
	if r.Year != "" {
		fmt.Printf("  year:     %s\n", r.Year)
	}
	if len(r.Keywords) > 0 {
		fmt.Printf("  keywords: %v\n", r.Keywords)
	}
	fmt.Printf("  APA: %s\n", r.CitationAPA)
	fmt.Printf("  MLA: %s\n", r.CitationMLA)
}

func init() {
	addCmd.Flags().String("title", "", "override the extracted title")
	addCmd.Flags().String("abstract", "", "override the extracted abstract")
	addCmd.Flags().StringSlice("keywords", nil, "override the extracted keywords")
	addCmd.Flags().StringSlice("authors", nil, "override the extracted authors")
	addCmd.Flags().String("year", "", "override the extracted publication year")
	addCmd.Flags().String("academic-year", "", "school-year tag (e.g. 2023-2024)")
	addCmd.Flags().String("label", "", "work type: practical_research, capstone, thesis, dissertation, other")
	addCmd.Flags().String("strand", "", "academic strand: STEM, HUMSS, ABM, ICT, GAS, Other")
	addCmd.Flags().String("institution", "", "institution for citations (default: repository.institution config)")
	addCmd.Flags().String("access", "", "access level: public, authenticated, or restricted")
	addCmd.Flags().String("uploaded-by", "", "name of the uploading user")

	rootCmd.AddCommand(addCmd)
}
