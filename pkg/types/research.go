// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ResearchLabel classifies the kind of academic work a record holds.
type ResearchLabel string

const (
	LabelPracticalResearch ResearchLabel = "practical_research"
	LabelCapstone          ResearchLabel = "capstone"
	LabelThesis            ResearchLabel = "thesis"
	LabelDissertation      ResearchLabel = "dissertation"
	LabelOther             ResearchLabel = "other"
)

// ResearchStrand is the academic track a paper belongs to. It is a
// pass-through classification used for filtering and statistics.
type ResearchStrand string

const (
	StrandSTEM  ResearchStrand = "STEM"
	StrandHUMSS ResearchStrand = "HUMSS"
	StrandABM   ResearchStrand = "ABM"
	StrandICT   ResearchStrand = "ICT"
	StrandGAS   ResearchStrand = "GAS"
	StrandOther ResearchStrand = "Other"
)

// AccessLevel controls who may read a record's full text.
type AccessLevel string

const (
	AccessPublic        AccessLevel = "public"
	AccessAuthenticated AccessLevel = "authenticated"
	AccessRestricted    AccessLevel = "restricted"
)

// ValidAccessLevel reports whether s names a known access level.
func ValidAccessLevel(s string) bool {
	switch AccessLevel(s) {
	case AccessPublic, AccessAuthenticated, AccessRestricted:
		return true
	}
	return false
}

// Research holds one repository record: the bibliographic fields recovered
// (or corrected) at upload time plus moderation and display state.
type Research struct {
	// ID is a UUID assigned at insert time.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract. May be empty for scanned documents
	// where no heuristic matched.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords lists keywords in order of appearance in the source.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Authors lists the paper authors in source order, as free-text
	// "First [Middle] Last" names.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the four-digit publication year, or empty when unknown.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// AcademicYear is the school-year tag (e.g. "2023-2024").
	AcademicYear string `json:"academic_year,omitempty" yaml:"academic_year,omitempty"`

	// Label classifies the work (thesis, capstone, ...).
	Label ResearchLabel `json:"label,omitempty" yaml:"label,omitempty"`

	// Strand is the academic track.
	Strand ResearchStrand `json:"strand,omitempty" yaml:"strand,omitempty"`

	// Institution is the granting or hosting institution, used in citations.
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`

	// AccessLevel controls full-text visibility. Defaults to public.
	AccessLevel AccessLevel `json:"access_level" yaml:"access_level"`

	// AbstractVisible controls whether the abstract is shown to readers
	// without full-text access.
	AbstractVisible bool `json:"abstract_visible" yaml:"abstract_visible"`

	// Archived hides the record from default search results.
	Archived bool `json:"archived" yaml:"archived"`

	// FilePath is the repository-local path of the stored original file.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// FileName is the original upload filename.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`

	// Views counts detail-page reads.
	Views int `json:"views" yaml:"views"`

	// CitationAPA and CitationMLA are the rendered citation strings,
	// regenerated whenever the contributing fields change.
	CitationAPA string `json:"citation_apa,omitempty" yaml:"citation_apa,omitempty"`
	CitationMLA string `json:"citation_mla,omitempty" yaml:"citation_mla,omitempty"`

	// UploadedBy names the uploading user.
	UploadedBy string `json:"uploaded_by,omitempty" yaml:"uploaded_by,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// QAQuestion is a reader question attached to a research record.
type QAQuestion struct {
	ID         string     `json:"id" yaml:"id"`
	ResearchID string     `json:"research_id" yaml:"research_id"`
	UserName   string     `json:"user_name" yaml:"user_name"`
	Content    string     `json:"content" yaml:"content"`
	Upvotes    int        `json:"upvotes" yaml:"upvotes"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	Answers    []QAAnswer `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// QAAnswer is a reply to a QAQuestion.
type QAAnswer struct {
	ID         string    `json:"id" yaml:"id"`
	QuestionID string    `json:"question_id" yaml:"question_id"`
	UserName   string    `json:"user_name" yaml:"user_name"`
	Content    string    `json:"content" yaml:"content"`
	Upvotes    int       `json:"upvotes" yaml:"upvotes"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}
