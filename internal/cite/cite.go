// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders bibliographic data into APA 7th and MLA 9th edition
// citation strings. Formatting is pure and deterministic: every input,
// including empty author lists and missing years, has a defined rendering.
package cite

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/paperdock/paperdock/pkg/types"
)

// unknownAuthor is rendered when the author list is empty.
const unknownAuthor = "Unknown Author"

// noDate is the placeholder for an unknown publication year.
const noDate = "n.d."

// apaAuthor formats one name as "Last, F. M.". All tokens before the last
// are reduced to an initial. Single-token names pass through unchanged.
func apaAuthor(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	last := parts[len(parts)-1]
	initials := make([]string, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		r, _ := utf8.DecodeRuneInString(p)
		initials = append(initials, string(unicode.ToUpper(r))+".")
	}
	return last + ", " + strings.Join(initials, " ")
}

// mlaAuthor formats one name for MLA. The first author is inverted to
// "Last, First Middle"; later authors keep natural order. Single-token
// names pass through unchanged regardless of position.
func mlaAuthor(name string, first bool) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	if first {
		last := parts[len(parts)-1]
		return last + ", " + strings.Join(parts[:len(parts)-1], " ")
	}
	return name
}

// typeLabel maps a research label to the bracketed APA work descriptor.
func typeLabel(t types.ResearchLabel) string {
	switch t {
	case types.LabelThesis:
		return "Master's thesis"
	case types.LabelDissertation:
		return "Doctoral dissertation"
	case types.LabelCapstone:
		return "Capstone project"
	case types.LabelPracticalResearch:
		return "Research paper"
	default:
		return "Unpublished manuscript"
	}
}

// apaAuthorList renders the author block per APA 7 rules: "&" before the
// final name for 2-20 authors, and for more than 20 the first 19 names, an
// ellipsis, then the last name.
func apaAuthorList(authors []string) string {
	switch n := len(authors); {
	case n == 0:
		return unknownAuthor
	case n == 1:
		return apaAuthor(authors[0])
	case n == 2:
		return apaAuthor(authors[0]) + " & " + apaAuthor(authors[1])
	case n <= 20:
		formatted := make([]string, 0, n-1)
		for _, a := range authors[:n-1] {
			formatted = append(formatted, apaAuthor(a))
		}
		return strings.Join(formatted, ", ") + ", & " + apaAuthor(authors[n-1])
	default:
		formatted := make([]string, 0, 19)
		for _, a := range authors[:19] {
			formatted = append(formatted, apaAuthor(a))
		}
		return strings.Join(formatted, ", ") + ", ... " + apaAuthor(authors[n-1])
	}
}

// mlaAuthorList renders the author block per MLA 9 rules: "and" before the
// final name up to three authors, "et al." beyond that.
func mlaAuthorList(authors []string) string {
	switch len(authors) {
	case 0:
		return unknownAuthor
	case 1:
		return mlaAuthor(authors[0], true)
	case 2:
		return mlaAuthor(authors[0], true) + ", and " + mlaAuthor(authors[1], false)
	case 3:
		return mlaAuthor(authors[0], true) + ", " + mlaAuthor(authors[1], false) +
			", and " + mlaAuthor(authors[2], false)
	default:
		return mlaAuthor(authors[0], true) + ", et al."
	}
}

// FormatAPA renders an APA 7th edition citation:
//
//	Author, A. B. (Year). Title of work [Type of work]. Institution.
func FormatAPA(data types.CitationData) string {
	yearPart := "(" + noDate + ")"
	if data.Year != "" {
		yearPart = "(" + data.Year + ")"
	}

	institutionPart := ""
	if data.Institution != "" {
		institutionPart = " " + data.Institution + "."
	}

	return fmt.Sprintf("%s %s. %s [%s].%s",
		apaAuthorList(data.Authors), yearPart, data.Title, typeLabel(data.Type), institutionPart)
}

// FormatMLA renders an MLA 9th edition citation:
//
//	Last, First, et al. "Title." Institution, Year.
func FormatMLA(data types.CitationData) string {
	year := data.Year
	if year == "" {
		year = noDate
	}

	institutionPart := ""
	if data.Institution != "" {
		institutionPart = data.Institution + ", "
	}

	return fmt.Sprintf("%s. \"%s.\" %s%s.", mlaAuthorList(data.Authors), data.Title, institutionPart, year)
}

// Generate renders both supported citation styles for the given data.
func Generate(data types.CitationData) types.CitationOutput {
	return types.CitationOutput{
		APA: FormatAPA(data),
		MLA: FormatMLA(data),
	}
}
