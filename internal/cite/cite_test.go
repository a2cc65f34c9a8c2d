// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paperdock/paperdock/pkg/types"
)

func sampleData(authors ...string) types.CitationData {
	return types.CitationData{
		Authors:     authors,
		Title:       "Title",
		Year:        "2024",
		Institution: "Inst",
		Type:        types.LabelPracticalResearch,
	}
}

func TestApaAuthor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maria Santos", "Santos, M."},
		{"Juan Dela Cruz", "Cruz, J. D."},
		{"Plato", "Plato"},
		{"  Ana   Reyes  ", "Reyes, A."},
		{"ana reyes", "reyes, A."},
		{"Ángel García", "García, Á."},
		{"ángel Ñuñez garcía", "garcía, Á. Ñ."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apaAuthor(tt.name))
		})
	}
}

func TestMlaAuthor(t *testing.T) {
	assert.Equal(t, "Santos, Maria", mlaAuthor("Maria Santos", true))
	assert.Equal(t, "Cruz, Juan Dela", mlaAuthor("Juan Dela Cruz", true))
	assert.Equal(t, "Maria Santos", mlaAuthor("Maria Santos", false))
	assert.Equal(t, "Plato", mlaAuthor("Plato", true))
	assert.Equal(t, "Plato", mlaAuthor("Plato", false))

	// Non-first authors come back exactly as given, padding included.
	assert.Equal(t, " Maria Santos ", mlaAuthor(" Maria Santos ", false))
}

func TestFormatAPA_AccentedInitials(t *testing.T) {
	got := FormatAPA(sampleData("Ángel García", "Maria Santos"))
	assert.Equal(t, "García, Á. & Santos, M. (2024). Title [Research paper]. Inst.", got)
}

func TestFormatAPA_AuthorCounts(t *testing.T) {
	many := func(n int) []string {
		authors := make([]string, n)
		for i := range authors {
			authors[i] = fmt.Sprintf("Author%c Name%c", 'A'+i%26, 'A'+i%26)
		}
		return authors
	}

	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{
			name:    "no authors",
			authors: nil,
			want:    "Unknown Author (2024). Title [Research paper]. Inst.",
		},
		{
			name:    "one author",
			authors: []string{"Maria Santos"},
			want:    "Santos, M. (2024). Title [Research paper]. Inst.",
		},
		{
			name:    "two authors",
			authors: []string{"Juan Cruz", "Maria Santos"},
			want:    "Cruz, J. & Santos, M. (2024). Title [Research paper]. Inst.",
		},
		{
			name:    "three authors",
			authors: []string{"Ana Reyes", "Ben Cruz", "Cara Diaz"},
			want:    "Reyes, A., Cruz, B., & Diaz, C. (2024). Title [Research paper]. Inst.",
		},
		{
			name:    "four authors",
			authors: []string{"Ana Reyes", "Ben Cruz", "Cara Diaz", "Dan Lim"},
			want:    "Reyes, A., Cruz, B., Diaz, C., & Lim, D. (2024). Title [Research paper]. Inst.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAPA(sampleData(tt.authors...)))
		})
	}

	t.Run("twenty authors keeps full list", func(t *testing.T) {
		got := FormatAPA(sampleData(many(20)...))
		assert.NotContains(t, got, "...")
		assert.Contains(t, got, ", & ")
	})

	t.Run("twenty-one authors elides to first 19 plus last", func(t *testing.T) {
		authors := many(21)
		formatted := make([]string, 19)
		for i := range formatted {
			formatted[i] = apaAuthor(authors[i])
		}
		want := strings.Join(formatted, ", ") + ", ... " + apaAuthor(authors[20])
		assert.Equal(t, want, apaAuthorList(authors))
	})

	t.Run("twenty-five authors", func(t *testing.T) {
		authors := many(25)
		got := apaAuthorList(authors)
		assert.Contains(t, got, ", ... "+apaAuthor(authors[24]))
		assert.NotContains(t, got, apaAuthor(authors[20]))
	})
}

func TestFormatMLA_AuthorCounts(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{
			name:    "no authors",
			authors: nil,
			want:    `Unknown Author. "Title." Inst, 2024.`,
		},
		{
			name:    "one author",
			authors: []string{"Maria Santos"},
			want:    `Santos, Maria. "Title." Inst, 2024.`,
		},
		{
			name:    "two authors",
			authors: []string{"Ana Reyes", "Ben Cruz"},
			want:    `Reyes, Ana, and Ben Cruz. "Title." Inst, 2024.`,
		},
		{
			name:    "three authors",
			authors: []string{"Ana Reyes", "Ben Cruz", "Cara Diaz"},
			want:    `Reyes, Ana, Ben Cruz, and Cara Diaz. "Title." Inst, 2024.`,
		},
		{
			name:    "four authors use et al",
			authors: []string{"Ana Reyes", "Ben Cruz", "Cara Diaz", "Dan Lim"},
			want:    `Reyes, Ana, et al. "Title." Inst, 2024.`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMLA(sampleData(tt.authors...)))
		})
	}
}

func TestMissingFields(t *testing.T) {
	data := types.CitationData{
		Authors: []string{"Maria Santos"},
		Title:   "Title",
	}

	assert.Equal(t, "Santos, M. (n.d.). Title [Unpublished manuscript].", FormatAPA(data))
	assert.Equal(t, `Santos, Maria. "Title." n.d.`, FormatMLA(data))
}

func TestTypeLabels(t *testing.T) {
	tests := []struct {
		label types.ResearchLabel
		want  string
	}{
		{types.LabelThesis, "Master's thesis"},
		{types.LabelDissertation, "Doctoral dissertation"},
		{types.LabelCapstone, "Capstone project"},
		{types.LabelPracticalResearch, "Research paper"},
		{types.LabelOther, "Unpublished manuscript"},
		{"", "Unpublished manuscript"},
	}
	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			got := FormatAPA(types.CitationData{Title: "T", Year: "2024", Type: tt.label})
			assert.Contains(t, got, "["+tt.want+"]")
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	data := sampleData("Juan Cruz", "Maria Santos")

	first := Generate(data)
	second := Generate(data)

	assert.Equal(t, first, second)
	assert.Equal(t, first.APA, FormatAPA(data))
	assert.Equal(t, first.MLA, FormatMLA(data))
}
