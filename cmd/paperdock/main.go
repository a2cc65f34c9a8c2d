// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperdock CLI, a local
// repository for student research papers: ingestion with OCR-backed text
// extraction, metadata recovery, citation rendering, search, moderation,
// and reader Q&A.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paperdock/paperdock/internal/extract"
	"github.com/paperdock/paperdock/internal/ocr"
	"github.com/paperdock/paperdock/internal/pdfdoc"
	"github.com/paperdock/paperdock/internal/repo"
	"github.com/paperdock/paperdock/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paperdock CLI.
var rootCmd = &cobra.Command{
	Use:   "paperdock",
	Short: "Local repository for student research papers",
	Long: `paperdock manages a local repository of student research papers. Documents
are ingested with text extraction (embedded PDF text layers with OCR
fallback for scans), bibliographic metadata is recovered heuristically and
can be corrected by hand, and APA/MLA citations are rendered for every
record.

Records are indexed in SQLite with full-text search. Moderation commands
control access levels and archival; readers can attach questions and
answers to any record.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperdock.yaml or ~/.config/paperdock/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "repository base directory (default: ./repository)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperdock")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperdock"))
		}
	}

	viper.SetEnvPrefix("PAPERDOCK")
	viper.AutomaticEnv()

	def := types.DefaultConfig()
	viper.SetDefault("extraction.max_pages", def.Extraction.MaxPages)
	viper.SetDefault("extraction.raster_scale", def.Extraction.RasterScale)
	viper.SetDefault("extraction.min_text_layer_chars", def.Extraction.MinTextLayerChars)
	viper.SetDefault("ocr.tesseract", def.OCR.Tesseract)
	viper.SetDefault("ocr.language", def.OCR.Language)
	viper.SetDefault("repository.data_dir", def.Repository.DataDir)
	viper.SetDefault("repository.max_results", def.Repository.MaxResults)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from defaults, config
// file, environment, and flags.
func loadConfig() types.Config {
	cfg := types.Config{
		Extraction: types.ExtractionConfig{
			MaxPages:          viper.GetInt("extraction.max_pages"),
			RasterScale:       viper.GetFloat64("extraction.raster_scale"),
			MinTextLayerChars: viper.GetInt("extraction.min_text_layer_chars"),
		},
		OCR: types.OCRConfig{
			Tesseract:   viper.GetString("ocr.tesseract"),
			Language:    viper.GetString("ocr.language"),
			TessdataDir: viper.GetString("ocr.tessdata_dir"),
			WorkDir:     viper.GetString("ocr.work_dir"),
		},
		Repository: types.RepositoryConfig{
			DataDir:     viper.GetString("repository.data_dir"),
			MaxResults:  viper.GetInt("repository.max_results"),
			Institution: viper.GetString("repository.institution"),
		},
	}

	if dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir"); dataDir != "" {
		cfg.Repository.DataDir = dataDir
	}
	return cfg
}

// newExtractor builds the production extraction pipeline: MuPDF rendering,
// ledongthuc text layers, tesseract OCR.
func newExtractor(cfg types.Config) *extract.Extractor {
	return extract.New(pdfdoc.Opener{}, ocr.New(cfg.OCR), cfg.Extraction)
}

// openStore opens the repository database under the configured data dir.
func openStore(cfg types.Config) (*repo.Store, error) {
	return repo.NewStore(cfg.Repository)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
