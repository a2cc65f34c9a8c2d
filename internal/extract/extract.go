// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns uploaded PDF and image files into plain text and
// structured bibliographic metadata. PDF pages are read from the embedded
// text layer when one exists and rasterized for OCR when it does not; the
// recovered text then goes through heuristic metadata parsing (parse.go).
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/paperdock/paperdock/pkg/types"
)

// ErrExtractionFailed reports that the document could not be loaded or
// decoded at all. No partial result accompanies it.
var ErrExtractionFailed = errors.New("failed to extract text from document")

// Progress is one advisory progress event. Percent is in [0,100] and never
// decreases across the events of a single extraction.
type Progress struct {
	Status  string
	Percent float64
}

// ProgressFunc receives progress events. A nil func disables reporting.
type ProgressFunc func(Progress)

// Document is the narrow contract to a PDF rendering engine. Pages are
// 1-based. A PageText error means the page has no usable text layer; the
// caller falls back to OCR rather than failing.
type Document interface {
	NumPages() int
	PageText(ctx context.Context, page int) (string, error)
	RenderPage(ctx context.Context, page int, scale float64) (image.Image, error)
	Close() error
}

// DocumentOpener opens a PDF from an in-memory buffer. Implementations
// live outside this package so tests can supply fakes.
type DocumentOpener interface {
	Open(data []byte) (Document, error)
}

// Recognition is the OCR engine's output for one image: recognized text
// and the engine's confidence in [0,100].
type Recognition struct {
	Text       string
	Confidence float64
}

// Recognizer runs optical character recognition over a raster image.
// The progress hook receives values in [0,1].
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, progress func(float64)) (Recognition, error)
}

// pdfPathConfidence is the flat estimate reported whenever the PDF path
// runs, regardless of the per-page text-layer/OCR mix. Kept as-is for
// compatibility with established results rather than weighted per page.
const pdfPathConfidence = 85

// Extractor converts uploaded files into ExtractionResults using injected
// PDF and OCR collaborators. Each call operates on independent state, so
// concurrent extractions need no coordination.
type Extractor struct {
	opener DocumentOpener
	ocr    Recognizer
	cfg    types.ExtractionConfig
}

// New returns an Extractor. Zero config fields fall back to the defaults
// (5 pages, 2.0 scale, 50-character text-layer threshold).
func New(opener DocumentOpener, ocr Recognizer, cfg types.ExtractionConfig) *Extractor {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	if cfg.RasterScale <= 0 {
		cfg.RasterScale = 2.0
	}
	if cfg.MinTextLayerChars <= 0 {
		cfg.MinTextLayerChars = 50
	}
	return &Extractor{opener: opener, ocr: ocr, cfg: cfg}
}

// progressSink forwards events to the caller's ProgressFunc, clamping the
// percent to [0,100] and to the running maximum so emitted progress is
// monotonically non-decreasing.
type progressSink struct {
	fn   ProgressFunc
	last float64
}

func (s *progressSink) emit(status string, pct float64) {
	if s.fn == nil {
		return
	}
	if pct < s.last {
		pct = s.last
	}
	if pct > 100 {
		pct = 100
	}
	s.last = pct
	s.fn(Progress{Status: status, Percent: pct})
}

// ExtractFile extracts text and metadata from an uploaded file. PDF input
// (detected by magic bytes) goes through the per-page pipeline; anything
// else is treated as a raster image and sent to OCR whole. The caller is
// expected to have validated MIME type and size already.
func (e *Extractor) ExtractFile(ctx context.Context, data []byte, onProgress ProgressFunc) (*types.ExtractionResult, error) {
	sink := &progressSink{fn: onProgress}
	if isPDF(data) {
		return e.extractPDF(ctx, data, sink)
	}
	return e.extractImage(ctx, data, sink)
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte, sink *progressSink) (*types.ExtractionResult, error) {
	sink.emit("Opening PDF engine...", 5)

	doc, err := e.opener.Open(data)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	sink.emit("Loading PDF...", 10)

	numPages := doc.NumPages()
	if numPages > e.cfg.MaxPages {
		numPages = e.cfg.MaxPages
	}

	sink.emit("Converting pages...", 15)

	var buf strings.Builder
	for page := 1; page <= numPages; page++ {
		sink.emit(
			fmt.Sprintf("Processing page %d of %d...", page, numPages),
			15+float64(page)/float64(numPages)*65,
		)

		text, err := doc.PageText(ctx, page)
		if err != nil {
			// No readable text layer; treat the page as scanned.
			text = ""
		}

		if len(strings.TrimSpace(text)) > e.cfg.MinTextLayerChars {
			buf.WriteString(text)
			buf.WriteString("\n\n")
			continue
		}

		img, err := doc.RenderPage(ctx, page, e.cfg.RasterScale)
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %v", ErrExtractionFailed, page, err)
		}

		base := 15 + float64(page-1)/float64(numPages)*65
		rec, err := e.ocr.Recognize(ctx, img, func(p float64) {
			sink.emit(
				fmt.Sprintf("Recognizing text on page %d...", page),
				base+p*65/float64(numPages),
			)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: recognizing page %d: %v", ErrExtractionFailed, page, err)
		}

		buf.WriteString(rec.Text)
		buf.WriteString("\n\n")
	}

	sink.emit("Parsing extracted text...", 85)

	result := Parse(buf.String())
	result.Confidence = pdfPathConfidence

	sink.emit("Complete", 100)
	return result, nil
}

func (e *Extractor) extractImage(ctx context.Context, data []byte, sink *progressSink) (*types.ExtractionResult, error) {
	sink.emit("Initializing OCR...", 10)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", ErrExtractionFailed, err)
	}

	rec, err := e.ocr.Recognize(ctx, img, func(p float64) {
		sink.emit("Recognizing text...", 20+p*60)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: recognizing image: %v", ErrExtractionFailed, err)
	}

	sink.emit("Parsing extracted text...", 85)

	result := Parse(rec.Text)
	result.Confidence = clampConfidence(rec.Confidence)

	sink.emit("Complete", 100)
	return result, nil
}

// clampConfidence bounds an engine-reported confidence to [0,100].
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
