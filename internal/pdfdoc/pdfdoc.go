// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc adapts PDF rendering engines to the extract.Document
// contract. Rasterization and page counting go through MuPDF (go-fitz);
// the embedded text layer is read with ledongthuc/pdf, which copes better
// with the text streams common in office-exported papers.
package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"github.com/paperdock/paperdock/internal/extract"
)

// errNoTextLayer signals the caller to fall back to OCR for the page.
var errNoTextLayer = errors.New("page has no text layer")

// baseDPI is the rendering resolution at scale 1.0.
const baseDPI = 72

// Opener opens PDFs from memory. The zero value is ready to use.
type Opener struct{}

// Open parses the PDF buffer. A failure here means the document itself is
// unreadable; a document whose text layer cannot be parsed is still
// returned and serves raster pages only.
func (Opener) Open(data []byte) (extract.Document, error) {
	fz, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	doc := &document{fz: fz}
	if reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		doc.text = reader
	}
	return doc, nil
}

type document struct {
	fz   *fitz.Document
	text *pdf.Reader
}

func (d *document) NumPages() int {
	return d.fz.NumPage()
}

// PageText reads the embedded text layer of a 1-based page. The underlying
// reader panics on some malformed content streams, so recover and report
// the page as image-only instead of crashing the extraction.
func (d *document) PageText(_ context.Context, page int) (text string, err error) {
	if d.text == nil || page > d.text.NumPage() {
		return "", errNoTextLayer
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("reading text layer of page %d: %v", page, r)
		}
	}()

	p := d.text.Page(page)
	if p.V.IsNull() {
		return "", errNoTextLayer
	}
	return p.GetPlainText(nil)
}

func (d *document) RenderPage(_ context.Context, page int, scale float64) (image.Image, error) {
	img, err := d.fz.ImageDPI(page-1, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}
	return img, nil
}

func (d *document) Close() error {
	return d.fz.Close()
}
