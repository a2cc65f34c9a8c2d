// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/paperdock/paperdock/pkg/types"
)

// UntitledDocument is the title sentinel when no candidate line qualifies.
const UntitledDocument = "Untitled Document"

// Heuristic patterns for metadata recovery. All matching is
// case-insensitive; overlapping fields are resolved purely by the order
// the heuristics run in, with no cross-field consistency check.
var (
	// titleSkipRe rejects lines that are section headers or bare page numbers.
	titleSkipRe = regexp.MustCompile(`(?i)^(page|abstract|keywords|introduction|\d+)$`)

	// abstractSectionRe captures abstract text up to the next known section
	// header. RE2 has no lookahead, so the header is consumed rather than
	// asserted; only the capture group is used.
	abstractSectionRe = regexp.MustCompile(`(?is)abstract[:\s]*(.*?)\n\s*(?:keywords|introduction|1\.|background)`)

	// abstractLabelRe locates the abstract label for the bounded-window
	// fallback (the window itself is sliced out, since RE2 caps counted
	// repetition below the 2000-character bound).
	abstractLabelRe = regexp.MustCompile(`(?i)abstract[:\s]*`)

	// keywordsRe captures the remainder of a "Keywords:" line.
	keywordsRe = regexp.MustCompile(`(?i)keywords?[:\s]*([^\n]+)`)

	// authorPatterns are tried in order; the first that yields at least one
	// surviving name wins.
	authorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:by|authors?)[:\s]*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:submitted by|prepared by)[:\s]*([^\n]+)`),
	}

	// yearRe matches the first plausible four-digit publication year.
	yearRe = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)

	authorSplitRe  = regexp.MustCompile(`[,&]`)
	keywordSplitRe = regexp.MustCompile(`[,;]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	paragraphRe    = regexp.MustCompile(`\n\s*\n`)
	digitRe        = regexp.MustCompile(`\d`)
)

// abstractWindow bounds how much text after the abstract label the
// fallback pattern considers.
const abstractWindow = 2000

// Parse applies text heuristics to recover structured bibliographic fields
// from raw extracted text. It is pure: no I/O, no retained state, and it
// never fails — heuristics that find nothing leave their field empty.
// Confidence is left at zero for the caller to fill in.
func Parse(text string) *types.ExtractionResult {
	lines := nonEmptyLines(text)

	result := &types.ExtractionResult{
		Title:   parseTitle(lines),
		RawText: text,
	}

	result.Abstract = parseAbstract(text)
	result.Keywords = parseKeywords(text)
	result.Authors = parseAuthors(text)

	if m := yearRe.FindStringSubmatch(text); m != nil {
		result.Year = m[1]
	}

	// Last resort for the abstract: the first substantial paragraph.
	if result.Abstract == "" && len(lines) > 2 {
		result.Abstract = firstParagraph(text)
	}

	if result.Title == "" {
		result.Title = UntitledDocument
	}

	return result
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// parseTitle picks the first of the first five non-empty lines whose length
// is strictly between 10 and 300 characters and which is not a header or a
// bare page number.
func parseTitle(lines []string) string {
	for i := 0; i < len(lines) && i < 5; i++ {
		n := utf8.RuneCountInString(lines[i])
		if n > 10 && n < 300 && !titleSkipRe.MatchString(lines[i]) {
			return lines[i]
		}
	}
	return ""
}

// parseAbstract tries the section-delimited pattern, then a bounded window
// after the abstract label. A candidate is accepted once its collapsed
// length exceeds 50 characters; a shorter candidate still stands if no
// later pattern improves on it.
func parseAbstract(text string) string {
	var abstract string

	if m := abstractSectionRe.FindStringSubmatch(text); m != nil {
		abstract = collapse(strings.TrimSpace(m[1]))
		if utf8.RuneCountInString(abstract) > 50 {
			return abstract
		}
	}

	// Only the first label can qualify: the window runs to the end of the
	// input, so any later occurrence has strictly less text remaining.
	if loc := abstractLabelRe.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		if utf8.RuneCountInString(rest) >= 100 {
			rest = truncateRunes(rest, abstractWindow)
			candidate := collapse(strings.TrimSpace(rest))
			// Overwrites a too-short section-pattern candidate, matching
			// the priority order of the patterns.
			abstract = candidate
			if utf8.RuneCountInString(abstract) > 50 {
				return abstract
			}
		}
	}

	return abstract
}

func parseKeywords(text string) []string {
	m := keywordsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var keywords []string
	for _, k := range keywordSplitRe.Split(m[1], -1) {
		k = strings.TrimSpace(k)
		if n := utf8.RuneCountInString(k); n > 2 && n < 50 {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func parseAuthors(text string) []string {
	for _, pattern := range authorPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		var authors []string
		for _, a := range authorSplitRe.Split(m[1], -1) {
			a = strings.TrimSpace(a)
			n := utf8.RuneCountInString(a)
			if n > 3 && n < 100 && !digitRe.MatchString(a) {
				authors = append(authors, a)
			}
		}
		if len(authors) > 0 {
			return authors
		}
	}
	return nil
}

// firstParagraph returns the first blank-line-delimited block longer than
// 100 characters, collapsed and capped at 1000 characters.
func firstParagraph(text string) string {
	for _, p := range paragraphRe.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(p)) > 100 {
			return truncateRunes(collapse(p), 1000)
		}
	}
	return ""
}

// collapse squashes all whitespace runs to single spaces.
func collapse(s string) string {
	return whitespaceRe.ReplaceAllString(s, " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
