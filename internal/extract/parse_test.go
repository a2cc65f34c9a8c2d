// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"
)

const loremAbstract = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, " +
	"sed do eiusmod tempor incididunt ut labore et dolore magna aliqua ut enim."

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "first substantial line wins",
			lines: []string{"A Study of Mangrove Reforestation Outcomes", "by Someone"},
			want:  "A Study of Mangrove Reforestation Outcomes",
		},
		{
			name:  "headers and page numbers skipped",
			lines: []string{"Abstract", "Page", "12", "Water Quality in Urban Creeks"},
			want:  "Water Quality in Urban Creeks",
		},
		{
			name:  "exactly 10 chars rejected",
			lines: []string{strings.Repeat("t", 10)},
			want:  "",
		},
		{
			name:  "11 chars accepted",
			lines: []string{strings.Repeat("t", 11)},
			want:  strings.Repeat("t", 11),
		},
		{
			name:  "exactly 300 chars rejected",
			lines: []string{strings.Repeat("t", 300)},
			want:  "",
		},
		{
			name:  "299 chars accepted",
			lines: []string{strings.Repeat("t", 299)},
			want:  strings.Repeat("t", 299),
		},
		{
			name:  "only first five lines considered",
			lines: []string{"a", "b", "c", "d", "e", "A Late But Valid Title Line"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTitle(tt.lines); got != tt.want {
				t.Errorf("parseTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_UntitledFallback(t *testing.T) {
	result := Parse("short\n123\n")
	if result.Title != UntitledDocument {
		t.Errorf("Title = %q, want %q", result.Title, UntitledDocument)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
}

func TestParse_AbstractAndKeywords(t *testing.T) {
	text := "A Study of Machine Learning in Rural Health Clinics\n\n" +
		"Abstract: " + loremAbstract + "\n\n" +
		"Keywords: machine learning, health, rural medicine\n\n" +
		"Introduction\nThe rest of the paper.\n"

	result := Parse(text)

	if !strings.Contains(result.Abstract, "Lorem ipsum") {
		t.Errorf("Abstract = %q, want it to contain %q", result.Abstract, "Lorem ipsum")
	}
	if strings.Contains(result.Abstract, "Keywords") {
		t.Errorf("Abstract %q swallowed the keywords line", result.Abstract)
	}

	want := []string{"machine learning", "health", "rural medicine"}
	if len(result.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want %v", result.Keywords, want)
	}
	for i := range want {
		if result.Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, result.Keywords[i], want[i])
		}
	}
}

func TestParseKeywords_LengthBounds(t *testing.T) {
	// Two-character entries sit on the exclusive lower bound and are dropped.
	text := "Keywords: ai, health, ml, " + strings.Repeat("k", 50) + "\n"

	result := Parse(text)

	if len(result.Keywords) != 1 || result.Keywords[0] != "health" {
		t.Errorf("Keywords = %v, want [health]", result.Keywords)
	}
}

func TestParse_AbstractWindowFallback(t *testing.T) {
	// No section header follows, so the bounded-window pattern applies.
	text := "Some Research Title Goes Here\n\nAbstract " + loremAbstract + " " + loremAbstract

	result := Parse(text)

	if !strings.Contains(result.Abstract, "Lorem ipsum") {
		t.Errorf("Abstract = %q, want lorem content", result.Abstract)
	}
}

func TestParse_AbstractParagraphFallback(t *testing.T) {
	text := "An Acceptable Title Line Here\nsecond line\n\n" + loremAbstract + "\n\nNext paragraph.\n"

	result := Parse(text)

	if !strings.Contains(result.Abstract, "Lorem ipsum") {
		t.Errorf("Abstract = %q, want first substantial paragraph", result.Abstract)
	}
	if len(result.Abstract) > 1000 {
		t.Errorf("Abstract length = %d, want <= 1000", len(result.Abstract))
	}
}

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "by line with comma and ampersand",
			text: "Title\nby Juan Dela Cruz, Maria Santos & Pedro Reyes\n",
			want: []string{"Juan Dela Cruz", "Maria Santos", "Pedro Reyes"},
		},
		{
			name: "authors label",
			text: "Authors: Ana Reyes, Ben Cruz\n",
			want: []string{"Ana Reyes", "Ben Cruz"},
		},
		{
			name: "submitted by",
			text: "Submitted by: Cara Diaz\n",
			want: []string{"Cara Diaz"},
		},
		{
			name: "entries with digits dropped",
			text: "by Maria Santos, 2023 Cohort\n",
			want: []string{"Maria Santos"},
		},
		{
			name: "no author line",
			text: "Just a paragraph of text with no attribution at all.\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAuthors(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("parseAuthors() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("authors[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParse_Year(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"modern year", "Published in 2024 by the department.", "2024"},
		{"nineties year", "Archived since 1998.", "1998"},
		{"first match wins", "From 2019 to 2023.", "2019"},
		{"no year", "No date appears anywhere here.", ""},
		{"five digit run not matched", "Serial 20245 is not a year.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).Year; got != tt.want {
				t.Errorf("Year = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_RetainsRawText(t *testing.T) {
	text := "Anything at all."
	if got := Parse(text).RawText; got != text {
		t.Errorf("RawText = %q, want %q", got, text)
	}
}
