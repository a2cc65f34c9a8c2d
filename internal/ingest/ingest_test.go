// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/paperdock/paperdock/internal/extract"
	"github.com/paperdock/paperdock/internal/repo"
	"github.com/paperdock/paperdock/pkg/types"
)

type fakeExtractor struct {
	result *types.ExtractionResult
	err    error
}

func (f *fakeExtractor) ExtractFile(_ context.Context, _ []byte, _ extract.ProgressFunc) (*types.ExtractionResult, error) {
	return f.result, f.err
}

func sampleResult() *types.ExtractionResult {
	return &types.ExtractionResult{
		Title:      "Telehealth Adoption in Rural Clinics",
		Abstract:   "A study of rural telehealth adoption.",
		Keywords:   []string{"telehealth", "rural health"},
		Authors:    []string{"Juan Dela Cruz"},
		Year:       "2024",
		Confidence: 85,
	}
}

func writeUpload(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 stub"), 0o644))
	return path
}

func newTestService(t *testing.T, ex Extractor) (*Service, *repo.Store, string) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := repo.NewStore(types.RepositoryConfig{DataDir: dataDir})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := types.RepositoryConfig{DataDir: dataDir, Institution: "San Isidro NHS"}
	return NewService(ex, store, cfg), store, dataDir
}

func TestAdd(t *testing.T) {
	svc, store, dataDir := newTestService(t, &fakeExtractor{result: sampleResult()})
	path := writeUpload(t, "thesis.pdf")

	r, err := svc.Add(context.Background(), path, Overrides{
		Label:      types.LabelThesis,
		Strand:     types.StrandSTEM,
		UploadedBy: "registrar",
	}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Telehealth Adoption in Rural Clinics", r.Title)
	assert.Equal(t, "San Isidro NHS", r.Institution)
	assert.Equal(t, types.AccessPublic, r.AccessLevel)
	assert.Equal(t, "thesis.pdf", r.FileName)
	assert.Contains(t, r.CitationAPA, "Cruz, J. D.")
	assert.Contains(t, r.CitationAPA, "[Master's thesis]")
	assert.Contains(t, r.CitationMLA, `"Telehealth Adoption in Rural Clinics."`)

	// Original filed under raw/ by record ID.
	assert.Equal(t, filepath.Join("raw", r.ID+".pdf"), r.FilePath)
	stored, err := os.ReadFile(filepath.Join(dataDir, r.FilePath))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 stub", string(stored))

	// Indexed and retrievable.
	got, err := store.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Title, got.Title)

	// YAML sidecar round-trips the record.
	sidecar, err := os.ReadFile(filepath.Join(dataDir, "metadata", r.ID+".yaml"))
	require.NoError(t, err)
	var fromDisk types.Research
	require.NoError(t, yaml.Unmarshal(sidecar, &fromDisk))
	assert.Equal(t, r.ID, fromDisk.ID)
	assert.Equal(t, r.Authors, fromDisk.Authors)
}

func TestAddOverrides(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeExtractor{result: sampleResult()})
	path := writeUpload(t, "paper.pdf")

	r, err := svc.Add(context.Background(), path, Overrides{
		Title:       "Corrected Title",
		Authors:     []string{"Ana Reyes"},
		Year:        "2023",
		Institution: "Other Campus",
		AccessLevel: types.AccessRestricted,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Corrected Title", r.Title)
	assert.Equal(t, []string{"Ana Reyes"}, r.Authors)
	assert.Equal(t, "2023", r.Year)
	assert.Equal(t, "Other Campus", r.Institution)
	assert.Equal(t, types.AccessRestricted, r.AccessLevel)

	// Citations reflect the overridden fields, not the extracted ones.
	assert.Contains(t, r.CitationAPA, "Reyes, A. (2023)")
}

func TestAddExtractionFailure(t *testing.T) {
	svc, _, dataDir := newTestService(t, &fakeExtractor{err: errors.New("unreadable")})
	path := writeUpload(t, "broken.pdf")

	_, err := svc.Add(context.Background(), path, Overrides{}, nil)
	require.Error(t, err)

	// Nothing filed on failure.
	entries, err := os.ReadDir(filepath.Join(dataDir, "raw"))
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestAddMissingFile(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeExtractor{result: sampleResult()})

	_, err := svc.Add(context.Background(), "/does/not/exist.pdf", Overrides{}, nil)
	assert.Error(t, err)
}

func TestAddBatch(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeExtractor{result: sampleResult()})
	good1 := writeUpload(t, "a.pdf")
	good2 := writeUpload(t, "b.pdf")

	var out bytes.Buffer
	result := svc.AddBatch(context.Background(),
		[]string{good1, "/missing.pdf", good2}, Overrides{}, &out)

	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	assert.Contains(t, out.String(), "added: a.pdf")
	assert.Contains(t, out.String(), "failed:  missing.pdf")
	assert.Contains(t, out.String(), "Batch summary: 2 added, 1 failed (total: 3)")
}

func TestApplyCitations(t *testing.T) {
	r := &types.Research{
		Title:   "Old Title",
		Authors: []string{"Juan Dela Cruz"},
		Year:    "2024",
		Label:   types.LabelCapstone,
	}
	ApplyCitations(r)
	first := r.CitationAPA

	r.Title = "New Title"
	ApplyCitations(r)

	assert.NotEqual(t, first, r.CitationAPA)
	assert.Contains(t, r.CitationAPA, "New Title")
}
