// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text and metadata from a document without storing it",
	Long: `Extract runs the extraction pipeline over a single PDF or image and
prints the recovered text and metadata without touching the repository.
Useful for previewing what add would record.

Progress goes to stderr; the result goes to stdout as YAML (or JSON
with --json).`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cfg := loadConfig()
	extractor := newExtractor(cfg)

	result, err := extractor.ExtractFile(context.Background(), data, progressToStderr)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	if raw {
		fmt.Println(result.RawText)
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func init() {
	extractCmd.Flags().Bool("json", false, "output the result as JSON instead of YAML")
	extractCmd.Flags().Bool("raw", false, "print only the raw extracted text")

	rootCmd.AddCommand(extractCmd)
}
