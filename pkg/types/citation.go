// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CitationData carries the bibliographic fields the citation formatter
// needs. Callers rebuild it whenever a contributing field changes; the
// formatter keeps no state.
type CitationData struct {
	// Authors are free-text full names in "First [Middle] Last" form.
	Authors []string `json:"authors" yaml:"authors"`

	// Title of the work.
	Title string `json:"title" yaml:"title"`

	// Year of publication. Empty means unknown; "n.d." is the canonical
	// placeholder in rendered output.
	Year string `json:"year" yaml:"year"`

	// Institution is optional and appended after the title when present.
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`

	// Type selects the bracketed work label in APA output.
	Type ResearchLabel `json:"type,omitempty" yaml:"type,omitempty"`
}

// CitationOutput holds the rendered citation strings for both supported
// styles.
type CitationOutput struct {
	APA string `json:"apa" yaml:"apa"`
	MLA string `json:"mla" yaml:"mla"`
}
