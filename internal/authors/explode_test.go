// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/litscorer/pkg/types"
)

func sampleArticles() []types.Article {
	return []types.Article{
		{
			ID: "1", PMID: "1", Title: "Heart failure in Osaka", Journal: "Circ J", PubYear: "2023",
			Authors: []types.ArticleAuthor{
				{FullName: "Tanaka T", FirstName: "Taro", LastName: "Tanaka",
					Affiliations: []string{"Department of Cardiology, Osaka University | Osaka", "Osaka Hospital"}},
				{FullName: "Suzuki K", FirstName: "Kenichi", LastName: "Suzuki",
					Affiliations: []string{"", "Keio University"}},
			},
		},
		{
			ID: "PPR7", Source: "PPR", Title: "Preprint", FirstPublicationDate: "2019-05-01",
			Authors: []types.ArticleAuthor{
				{FullName: "Consortium X"},
			},
		},
	}
}

func TestExplode(t *testing.T) {
	rows := Explode(sampleArticles())
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "1", first.PMID)
	assert.Equal(t, 2023, first.Year)
	assert.Equal(t, 1, first.AuthorOrder)
	assert.Equal(t, 2, first.Score)
	assert.Equal(t, "Taro Tanaka", first.DisplayName)
	assert.Equal(t, "Department of Cardiology, Osaka University | Osaka | Osaka Hospital", first.Affiliation)
	assert.Equal(t, "Department of Cardiology, Osaka University", first.MainAffiliation)
	assert.Equal(t, "Department of Cardiology, Osaka University", first.DepartmentGuess)

	second := rows[1]
	assert.Equal(t, 2, second.AuthorOrder)
	assert.Equal(t, 1, second.Score)
	assert.Equal(t, "Keio University", second.MainAffiliation)
	assert.Empty(t, second.DepartmentGuess)

	third := rows[2]
	assert.Equal(t, "PPR7", third.PMID)
	assert.Equal(t, 2019, third.Year, "falls back to first publication date")
	assert.Equal(t, "Consortium X", third.DisplayName)
	assert.Equal(t, 2, third.Score)
	assert.Empty(t, third.MainAffiliation)
}

func TestExplodeNoAuthors(t *testing.T) {
	assert.Empty(t, Explode([]types.Article{{ID: "1"}}))
	assert.Empty(t, Explode(nil))
}

func TestFilterYears(t *testing.T) {
	rows := []types.AuthorRow{
		{PMID: "a", Year: 2019},
		{PMID: "b", Year: 2020},
		{PMID: "c", Year: 2025},
		{PMID: "d", Year: 2026},
		{PMID: "e", Year: 0},
	}
	got := FilterYears(rows, 2020, 2025)

	var keys []string
	for _, r := range got {
		keys = append(keys, r.PMID)
	}
	assert.Equal(t, []string{"b", "c", "e"}, keys)
	assert.Len(t, rows, 5, "input is not modified")
}

func TestExtractDepartment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Department of Cardiology, Osaka University", "Department of Cardiology, Osaka University"},
		{"Osaka University; Dept. of Medicine, Suita", "Dept. of Medicine, Suita"},
		{"Kyoto University. Division of Nephrology | Kyoto", "Division of Nephrology"},
		{"department of surgery", "department of surgery"},
		{"大阪大学 内科学教室。", "科学教室"},
		{"循環器内科。", ""},
		{"Osaka University", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractDepartment(tt.input), "ExtractDepartment(%q)", tt.input)
	}
}

func TestMainAffiliation(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"first entry", []string{"Osaka University", "Keio University"}, "Osaka University"},
		{"cut at separator", []string{"Osaka University  |  Suita"}, "Osaka University"},
		{"skip blanks", []string{"", "  ", "Keio University"}, "Keio University"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MainAffiliation(tt.input))
		})
	}
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, 2023, parseYear("2023"))
	assert.Equal(t, 2021, parseYear("2021-11-03"))
	assert.Zero(t, parseYear("20"))
	assert.Zero(t, parseYear("n.d."))
	assert.Zero(t, parseYear(""))
}
