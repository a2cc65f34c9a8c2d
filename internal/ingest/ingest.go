// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest adds documents to the repository: extract text, recover
// metadata, render citations, file the original under the data directory,
// and index the record for search.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/paperdock/paperdock/internal/cite"
	"github.com/paperdock/paperdock/internal/extract"
	"github.com/paperdock/paperdock/pkg/types"
)

const (
	// rawDir holds the stored original files, named by record ID.
	rawDir = "raw"
	// metadataDir holds one YAML sidecar per record.
	metadataDir = "metadata"
)

// Extractor recovers text and metadata from a document buffer. Satisfied
// by extract.Extractor; tests substitute a stub.
type Extractor interface {
	ExtractFile(ctx context.Context, data []byte, onProgress extract.ProgressFunc) (*types.ExtractionResult, error)
}

// Inserter is the slice of the repository store that ingestion needs.
type Inserter interface {
	Insert(ctx context.Context, r *types.Research) error
}

// Overrides carries operator-supplied metadata that takes precedence over
// whatever extraction recovered. Zero-valued fields leave the extracted
// value in place.
type Overrides struct {
	Title        string
	Abstract     string
	Keywords     []string
	Authors      []string
	Year         string
	AcademicYear string
	Label        types.ResearchLabel
	Strand       types.ResearchStrand
	Institution  string
	AccessLevel  types.AccessLevel
	UploadedBy   string
}

// BatchResult summarizes a batch ingestion run.
type BatchResult struct {
	Added  int
	Failed int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Added + r.Failed
}

// HasFailures reports whether any file failed to ingest.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Service wires extraction, citation rendering, and the store together.
type Service struct {
	extractor Extractor
	store     Inserter
	cfg       types.RepositoryConfig
}

// NewService returns an ingestion service writing under cfg.DataDir.
func NewService(extractor Extractor, store Inserter, cfg types.RepositoryConfig) *Service {
	return &Service{extractor: extractor, store: store, cfg: cfg}
}

// Add ingests one file: extraction, overrides, citations, filing, and
// indexing. onProgress receives extraction progress and may be nil.
func (s *Service) Add(ctx context.Context, path string, ov Overrides, onProgress extract.ProgressFunc) (*types.Research, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := s.extractor.ExtractFile(ctx, data, onProgress)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}

	r := s.buildRecord(path, result, ov)
	r.ID = uuid.NewString()

	if err := s.fileOriginal(r, data); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, err
	}
	if err := s.writeSidecar(r); err != nil {
		return nil, err
	}
	return r, nil
}

// AddBatch ingests each path in turn, printing per-file status to w and a
// summary line at the end. A failed file does not stop the batch.
func (s *Service) AddBatch(ctx context.Context, paths []string, ov Overrides, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		base := filepath.Base(path)
		r, err := s.Add(ctx, path, ov, nil)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "added: %s (%s)\n", base, r.ID)
		result.Added++
	}
	fmt.Fprintf(w, "\nBatch summary: %d added, %d failed (total: %d)\n",
		result.Added, result.Failed, result.Total())
	return result
}

// buildRecord merges the extraction result with operator overrides and
// renders the citations.
func (s *Service) buildRecord(path string, result *types.ExtractionResult, ov Overrides) *types.Research {
	r := &types.Research{
		Title:           result.Title,
		Abstract:        result.Abstract,
		Keywords:        result.Keywords,
		Authors:         result.Authors,
		Year:            result.Year,
		Institution:     s.cfg.Institution,
		AbstractVisible: true,
		FileName:        filepath.Base(path),
	}

	if ov.Title != "" {
		r.Title = ov.Title
	}
	if ov.Abstract != "" {
		r.Abstract = ov.Abstract
	}
	if len(ov.Keywords) > 0 {
		r.Keywords = ov.Keywords
	}
	if len(ov.Authors) > 0 {
		r.Authors = ov.Authors
	}
	if ov.Year != "" {
		r.Year = ov.Year
	}
	r.AcademicYear = ov.AcademicYear
	r.Label = ov.Label
	r.Strand = ov.Strand
	if ov.Institution != "" {
		r.Institution = ov.Institution
	}
	r.AccessLevel = ov.AccessLevel
	r.UploadedBy = ov.UploadedBy

	ApplyCitations(r)
	return r
}

// ApplyCitations renders both citation styles from the record's current
// bibliographic fields. Callers use it again after metadata edits.
func ApplyCitations(r *types.Research) {
	out := cite.Generate(types.CitationData{
		Authors:     r.Authors,
		Title:       r.Title,
		Year:        r.Year,
		Institution: r.Institution,
		Type:        r.Label,
	})
	r.CitationAPA = out.APA
	r.CitationMLA = out.MLA
}

// fileOriginal copies the uploaded bytes to raw/<id><ext> and records the
// repository-local path on r.
func (s *Service) fileOriginal(r *types.Research, data []byte) error {
	dir := filepath.Join(s.cfg.DataDir, rawDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating raw directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(r.FileName))
	stored := filepath.Join(dir, r.ID+ext)
	if err := os.WriteFile(stored, data, 0o644); err != nil {
		return fmt.Errorf("storing original file: %w", err)
	}

	r.FilePath = filepath.Join(rawDir, r.ID+ext)
	return nil
}

// writeSidecar saves the record as metadata/<id>.yaml for inspection and
// recovery outside the database.
func (s *Service) writeSidecar(r *types.Research) error {
	dir := filepath.Join(s.cfg.DataDir, metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	path := filepath.Join(dir, r.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata sidecar: %w", err)
	}
	return nil
}
