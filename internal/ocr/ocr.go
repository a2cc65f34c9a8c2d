// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr runs optical character recognition through the tesseract
// binary, satisfying the extract.Recognizer contract. Confidence comes
// from a second TSV-mode pass averaging per-word confidences.
package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/paperdock/paperdock/internal/extract"
	"github.com/paperdock/paperdock/pkg/types"
)

// Tesseract shells out to the tesseract CLI for recognition.
type Tesseract struct {
	cfg    types.OCRConfig
	runner Runner
}

// New returns a Tesseract recognizer. Empty config fields fall back to the
// "tesseract" binary on PATH and English.
func New(cfg types.OCRConfig) *Tesseract {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Tesseract{cfg: cfg, runner: execRunner{}}
}

// Recognize writes the raster to a temporary PNG and runs tesseract over
// it twice: once for the text, once in TSV mode for word confidences.
// The progress hook reports 0, 0.5, and 1 around the two passes; finer
// granularity is not available from the CLI.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, progress func(float64)) (extract.Recognition, error) {
	if progress != nil {
		progress(0)
	}

	path, cleanup, err := t.writeRaster(img)
	if err != nil {
		return extract.Recognition{}, err
	}
	defer cleanup()

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, t.args(path)...)
	if err != nil {
		return extract.Recognition{}, fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	if progress != nil {
		progress(0.5)
	}

	// Confidence is advisory; a failed TSV pass reports zero rather than
	// failing a recognition that already produced text.
	conf, _ := t.meanWordConfidence(ctx, path)

	if progress != nil {
		progress(1)
	}

	return extract.Recognition{Text: string(out), Confidence: conf}, nil
}

// args builds the base tesseract invocation: tesseract <file> stdout -l <lang>.
func (t *Tesseract) args(path string) []string {
	args := []string{path, "stdout", "-l", t.cfg.Language}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return args
}

// meanWordConfidence runs tesseract in TSV mode and averages the per-word
// confidence column, returning a value in [0,100].
func (t *Tesseract) meanWordConfidence(ctx context.Context, path string) (float64, error) {
	args := append(t.args(path), "tsv")

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		return 0, fmt.Errorf("tesseract tsv: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	var sum, n float64
	for i, line := range strings.Split(string(out), "\n") {
		if i == 0 || line == "" {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[len(cols)-2]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}

func (t *Tesseract) writeRaster(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp(t.cfg.WorkDir, "paperdock-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("creating raster temp file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("encoding raster: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("closing raster temp file: %w", err)
	}

	name := f.Name()
	return name, func() { os.Remove(name) }, nil
}
