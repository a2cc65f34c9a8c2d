// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionResult is the structured output of the text-extraction and
// metadata-parsing pipeline for one uploaded document. It is created once
// per extraction and not mutated afterwards; callers copy fields into
// editable form state.
type ExtractionResult struct {
	// Title is the best-guess document title. "Untitled Document" when no
	// candidate line qualified.
	Title string `json:"title" yaml:"title"`

	// Abstract is the best-guess abstract text. May be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords are in order of appearance in the detected keyword line.
	// Entries are trimmed and between 3 and 49 characters.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Authors are in source order. Entries are trimmed, digit-free, and
	// between 4 and 99 characters.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is a four-digit year (19xx or 20xx), or empty when none found.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// RawText is the full extracted text, retained for audit.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Confidence is a quality score in [0,100]: a fixed estimate when the
	// PDF path ran, or the OCR engine's reported confidence for image input.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}
