// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionConfig holds settings for the text-extraction stage.
type ExtractionConfig struct {
	// MaxPages caps how many PDF pages are processed (default 5).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// RasterScale is the render scale for pages sent to OCR (default 2.0).
	RasterScale float64 `json:"raster_scale" yaml:"raster_scale"`

	// MinTextLayerChars is the trimmed-length threshold above which a
	// page's embedded text layer is accepted without OCR (default 50).
	MinTextLayerChars int `json:"min_text_layer_chars" yaml:"min_text_layer_chars"`
}

// OCRConfig holds settings for the tesseract OCR collaborator.
type OCRConfig struct {
	// Tesseract is the binary name or absolute path (default "tesseract").
	Tesseract string `json:"tesseract" yaml:"tesseract"`

	// Language is the recognition language code (default "eng").
	Language string `json:"language" yaml:"language"`

	// TessdataDir overrides the tesseract data directory when set.
	TessdataDir string `json:"tessdata_dir,omitempty" yaml:"tessdata_dir,omitempty"`

	// WorkDir is where temporary page rasters are written. Empty uses the
	// system temp directory.
	WorkDir string `json:"work_dir,omitempty" yaml:"work_dir,omitempty"`
}

// RepositoryConfig holds settings for the record store and file layout.
type RepositoryConfig struct {
	// DataDir is the repository base directory (contains raw/, metadata/,
	// index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default search result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Institution is the default institution recorded on new uploads and
	// used in generated citations.
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`
}

// Config groups all stage configurations.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	OCR        OCRConfig        `json:"ocr" yaml:"ocr"`
	Repository RepositoryConfig `json:"repository" yaml:"repository"`
}

// DefaultConfig returns the configuration used when no file or flags
// override it.
func DefaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			MaxPages:          5,
			RasterScale:       2.0,
			MinTextLayerChars: 50,
		},
		OCR: OCRConfig{
			Tesseract: "tesseract",
			Language:  "eng",
		},
		Repository: RepositoryConfig{
			DataDir:    "repository",
			MaxResults: 20,
		},
	}
}
