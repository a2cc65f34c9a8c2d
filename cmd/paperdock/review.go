// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock/internal/ingest"
	"github.com/paperdock/paperdock/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review <record-id>",
	Short: "Correct metadata and moderate a record",
	Long: `Review updates a stored record: metadata corrections, access level
changes, and archival. Citations are re-rendered whenever a field they
depend on changes.

Only flags that are set are applied; everything else keeps its stored
value.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	r, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}

	changed := false
	citationFields := false

	setString := func(flag string, dst *string, citation bool) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = v
			changed = true
			if citation {
				citationFields = true
			}
		}
	}

	setString("title", &r.Title, true)
	setString("abstract", &r.Abstract, false)
	setString("year", &r.Year, true)
	setString("academic-year", &r.AcademicYear, false)
	setString("institution", &r.Institution, true)

	if cmd.Flags().Changed("authors") {
		r.Authors, _ = cmd.Flags().GetStringSlice("authors")
		changed = true
		citationFields = true
	}
	if cmd.Flags().Changed("keywords") {
		r.Keywords, _ = cmd.Flags().GetStringSlice("keywords")
		changed = true
	}
	if cmd.Flags().Changed("label") {
		v, _ := cmd.Flags().GetString("label")
		r.Label = types.ResearchLabel(v)
		changed = true
		citationFields = true
	}
	if cmd.Flags().Changed("strand") {
		v, _ := cmd.Flags().GetString("strand")
		r.Strand = types.ResearchStrand(v)
		changed = true
	}
	if cmd.Flags().Changed("access") {
		v, _ := cmd.Flags().GetString("access")
		if !types.ValidAccessLevel(v) {
			return fmt.Errorf("invalid access level %q: use public, authenticated, or restricted", v)
		}
		r.AccessLevel = types.AccessLevel(v)
		changed = true
	}
	if cmd.Flags().Changed("abstract-visible") {
		r.AbstractVisible, _ = cmd.Flags().GetBool("abstract-visible")
		changed = true
	}

	archive, _ := cmd.Flags().GetBool("archive")
	restore, _ := cmd.Flags().GetBool("restore")
	if archive && restore {
		return fmt.Errorf("--archive and --restore are mutually exclusive")
	}
	if archive {
		r.Archived = true
		changed = true
	}
	if restore {
		r.Archived = false
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change: set at least one flag")
	}

	if citationFields {
		ingest.ApplyCitations(r)
	}

	if err := store.Update(ctx, r); err != nil {
		return err
	}

	fmt.Printf("updated: %s\n", r.ID)
	if citationFields {
		fmt.Printf("  APA: %s\n", r.CitationAPA)
		fmt.Printf("  MLA: %s\n", r.CitationMLA)
	}
	return nil
}

func init() {
	reviewCmd.Flags().String("title", "", "set the title")
	reviewCmd.Flags().String("abstract", "", "set the abstract")
	reviewCmd.Flags().StringSlice("keywords", nil, "set the keywords")
	reviewCmd.Flags().StringSlice("authors", nil, "set the authors")
	reviewCmd.Flags().String("year", "", "set the publication year")
	reviewCmd.Flags().String("academic-year", "", "set the school-year tag")
	reviewCmd.Flags().String("label", "", "set the work type")
	reviewCmd.Flags().String("strand", "", "set the academic strand")
	reviewCmd.Flags().String("institution", "", "set the institution")
	reviewCmd.Flags().String("access", "", "set the access level: public, authenticated, restricted")
	reviewCmd.Flags().Bool("abstract-visible", true, "show the abstract to readers without full-text access")
	reviewCmd.Flags().Bool("archive", false, "hide the record from default search results")
	reviewCmd.Flags().Bool("restore", false, "restore an archived record")

	rootCmd.AddCommand(reviewCmd)
}
