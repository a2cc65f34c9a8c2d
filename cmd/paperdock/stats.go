// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print repository statistics",
	Long: `Stats summarizes the repository: paper and researcher counts, total
views, and a per-strand breakdown. Archived records are excluded.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Printf("Papers:      %d\n", st.Papers)
	fmt.Printf("Researchers: %d\n", st.Researchers)
	fmt.Printf("Total views: %d\n", st.TotalViews)

	if len(st.ByStrand) > 0 {
		strands := make([]string, 0, len(st.ByStrand))
		for s := range st.ByStrand {
			strands = append(strands, string(s))
		}
		sort.Strings(strands)

		fmt.Println("By strand:")
		for _, s := range strands {
			fmt.Printf("  %-6s %d\n", s, st.ByStrand[types.ResearchStrand(s)])
		}
	}
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}
