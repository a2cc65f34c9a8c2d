// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Show a record's details and citations",
	Long: `Show prints one record in full, including both citation styles and any
reader questions. Viewing a record increments its view counter unless
--no-view is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	id := args[0]

	noView, _ := cmd.Flags().GetBool("no-view")
	if !noView {
		if err := store.RecordView(ctx, id); err != nil {
			return err
		}
	}

	r, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Printf("ID:            %s\n", r.ID)
	fmt.Printf("Title:         %s\n", r.Title)
	if len(r.Authors) > 0 {
		fmt.Printf("Authors:       %s\n", strings.Join(r.Authors, "; "))
	}
	if r.Year != "" {
		fmt.Printf("Year:          %s\n", r.Year)
	}
	if r.AcademicYear != "" {
		fmt.Printf("Academic year: %s\n", r.AcademicYear)
	}
	if r.Label != "" {
		fmt.Printf("Label:         %s\n", r.Label)
	}
	if r.Strand != "" {
		fmt.Printf("Strand:        %s\n", r.Strand)
	}
	if r.Institution != "" {
		fmt.Printf("Institution:   %s\n", r.Institution)
	}
	fmt.Printf("Access:        %s\n", r.AccessLevel)
	if r.Archived {
		fmt.Println("Archived:      yes")
	}
	fmt.Printf("Views:         %d\n", r.Views)
	if r.FilePath != "" {
		fmt.Printf("File:          %s (%s)\n", r.FilePath, r.FileName)
	}
	if len(r.Keywords) > 0 {
		fmt.Printf("Keywords:      %s\n", strings.Join(r.Keywords, ", "))
	}

	if r.Abstract != "" && r.AbstractVisible {
		fmt.Printf("\nAbstract:\n%s\n", r.Abstract)
	}

	fmt.Printf("\nAPA: %s\n", r.CitationAPA)
	fmt.Printf("MLA: %s\n", r.CitationMLA)

	questions, err := store.Questions(ctx, id)
	if err != nil {
		return err
	}
	if len(questions) > 0 {
		fmt.Printf("\nQuestions (%d):\n", len(questions))
		for _, q := range questions {
			fmt.Printf("  [%s] %s (%s, %d upvotes)\n", q.ID, q.Content, q.UserName, q.Upvotes)
			for _, a := range q.Answers {
				fmt.Printf("    - %s (%s, %d upvotes)\n", a.Content, a.UserName, a.Upvotes)
			}
		}
	}
	return nil
}

func init() {
	showCmd.Flags().Bool("json", false, "output the record as JSON")
	showCmd.Flags().Bool("no-view", false, "do not increment the view counter")

	rootCmd.AddCommand(showCmd)
}
