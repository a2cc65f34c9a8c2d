// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdock/paperdock/pkg/types"
)

// fakeRunner answers the plain-text pass with text and the TSV pass with tsv.
type fakeRunner struct {
	text    string
	tsv     string
	textErr error
	tsvErr  error
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if args[len(args)-1] == "tsv" {
		return []byte(f.tsv), nil, f.tsvErr
	}
	return []byte(f.text), nil, f.textErr
}

// tsvSample builds a minimal TSV body with the given word confidences.
func tsvSample(confs ...string) string {
	var b strings.Builder
	b.WriteString("level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n")
	for _, c := range confs {
		b.WriteString("5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t" + c + "\tword\n")
	}
	return b.String()
}

func testRaster() image.Image {
	return image.NewGray(image.Rect(0, 0, 4, 4))
}

func newTestTesseract(t *testing.T, runner Runner) *Tesseract {
	t.Helper()
	tess := New(types.OCRConfig{WorkDir: t.TempDir()})
	tess.runner = runner
	return tess
}

func TestRecognize(t *testing.T) {
	runner := &fakeRunner{
		text: "Recognized page text.",
		tsv:  tsvSample("90", "80", "70"),
	}
	tess := newTestTesseract(t, runner)

	var progress []float64
	rec, err := tess.Recognize(context.Background(), testRaster(), func(p float64) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	assert.Equal(t, "Recognized page text.", rec.Text)
	assert.InDelta(t, 80.0, rec.Confidence, 1e-9)
	assert.Equal(t, []float64{0, 0.5, 1}, progress)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "tesseract", runner.calls[0][0])
	assert.Contains(t, runner.calls[0], "-l")
	assert.Contains(t, runner.calls[0], "eng")
	assert.Contains(t, runner.calls[0], "stdout")
	assert.Equal(t, "tsv", runner.calls[1][len(runner.calls[1])-1])
}

func TestRecognize_SkipsUnscoredRows(t *testing.T) {
	runner := &fakeRunner{
		text: "x",
		tsv:  tsvSample("-1", "", "60"),
	}
	tess := newTestTesseract(t, runner)

	rec, err := tess.Recognize(context.Background(), testRaster(), nil)
	require.NoError(t, err)

	assert.InDelta(t, 60.0, rec.Confidence, 1e-9)
}

func TestRecognize_TSVFailureIsAdvisory(t *testing.T) {
	runner := &fakeRunner{
		text:   "still got text",
		tsvErr: errors.New("tsv pass failed"),
	}
	tess := newTestTesseract(t, runner)

	rec, err := tess.Recognize(context.Background(), testRaster(), nil)
	require.NoError(t, err)

	assert.Equal(t, "still got text", rec.Text)
	assert.Equal(t, 0.0, rec.Confidence)
}

func TestRecognize_TextFailure(t *testing.T) {
	runner := &fakeRunner{textErr: errors.New("binary missing")}
	tess := newTestTesseract(t, runner)

	_, err := tess.Recognize(context.Background(), testRaster(), nil)
	assert.Error(t, err)
}

func TestRecognize_TessdataDirFlag(t *testing.T) {
	runner := &fakeRunner{text: "x", tsv: tsvSample("50")}
	tess := New(types.OCRConfig{TessdataDir: "/opt/tessdata", WorkDir: t.TempDir()})
	tess.runner = runner

	_, err := tess.Recognize(context.Background(), testRaster(), nil)
	require.NoError(t, err)

	assert.Contains(t, runner.calls[0], "--tessdata-dir")
	assert.Contains(t, runner.calls[0], "/opt/tessdata")
}
