// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/pdiddy/litscorer/pkg/types"
)

func sampleScores() []types.AuthorScore {
	return []types.AuthorScore{
		{Author: "Taro Tanaka", MainAffiliation: "Osaka University", KanaName: "タナカタロウ",
			KanaLastName: "タナカ", KanaFirstName: "タロウ", Score: 5, Articles: 3, ConfirmKana: true},
		{Author: "Kenichi Suzuki", MainAffiliation: "Keio University", KanaName: "スズキケンイチ",
			KanaLastName: "スズキ", KanaFirstName: "ケンイチ", Score: 2, Articles: 1},
	}
}

func sampleRows() []types.AuthorRow {
	return []types.AuthorRow{
		{PMID: "1", Title: "Heart, failure", Journal: "Circ J", Year: 2023, AuthorOrder: 1,
			FullName: "Tanaka T", FirstName: "Taro", LastName: "Tanaka", DisplayName: "Taro Tanaka",
			Affiliation: "Osaka University", MainAffiliation: "Osaka University", Score: 2},
		{PMID: "PPR2", AuthorOrder: 2, FullName: "Consortium X", DisplayName: "Consortium X", Score: 1},
	}
}

func readCSV(t *testing.T, r io.Reader) [][]string {
	t.Helper()
	records, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteAuthorScoresCSVWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAuthorScoresCSV(&buf, sampleScores(), types.EncodingUTF8BOM))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	records := readCSV(t, bytes.NewReader(data[len(utf8BOM):]))
	require.Len(t, records, 3)
	assert.Equal(t, scoresHeader, records[0])
	assert.Equal(t, []string{"Taro Tanaka", "Osaka University", "タナカタロウ", "タナカ", "タロウ", "5", "3", "True"}, records[1])
	assert.Equal(t, "False", records[2][7])
}

func TestDefaultEncodingIsBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAuthorScoresCSV(&buf, nil, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
}

func TestWriteAuthorRowsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAuthorRowsCSV(&buf, sampleRows(), types.EncodingUTF8))
	assert.False(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, rowsHeader, records[0])
	assert.Equal(t, "Heart, failure", records[1][1])
	assert.Equal(t, "2023", records[1][3])
	assert.Equal(t, "", records[2][3], "unknown year is blank")
	assert.Equal(t, "1", records[2][12])
}

func TestWriteCSVShiftJIS(t *testing.T) {
	scores := sampleScores()
	scores[1].Author = "Smile 😀"

	var buf bytes.Buffer
	require.NoError(t, WriteAuthorScoresCSV(&buf, scores, types.EncodingShiftJIS))
	assert.NotContains(t, buf.String(), "タナカ", "output is not UTF-8")

	decoded := transform.NewReader(&buf, japanese.ShiftJIS.NewDecoder())
	records := readCSV(t, decoded)
	require.Len(t, records, 3)
	assert.Equal(t, "タナカタロウ", records[1][2])
	assert.Equal(t, "Smile \x1a", records[2][0], "unencodable runes are substituted")
}

func TestWriteCSVUnsupportedEncoding(t *testing.T) {
	err := WriteAuthorRowsCSV(io.Discard, sampleRows(), "latin1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported CSV encoding")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ScoresFileName)
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return WriteAuthorScoresCSV(w, sampleScores(), types.EncodingUTF8)
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Author,MainAffiliation"))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "x.csv"), func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}

func TestFormatScoresTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatScoresTable(&buf, sampleScores(), 1))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "KanaName")
	assert.Contains(t, lines[2], "タナカタロウ")
	assert.Contains(t, lines[2], "✓")
	assert.NotContains(t, out, "Kenichi Suzuki")
	assert.Contains(t, out, "2 authors (showing 1)")

	// Header and data columns line up in display cells.
	assert.Equal(t, DisplayWidth(lines[0][:strings.Index(lines[0], "Score")]),
		DisplayWidth(lines[2][:strings.Index(lines[2], "    5")]))
}

func TestFormatScoresTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatScoresTable(&buf, nil, 0))
	assert.Equal(t, "No authors found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, sampleScores()))
	assert.Contains(t, buf.String(), "タナカタロウ")

	var got []types.AuthorScore
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleScores(), got)
}

func TestDisplayWidthAndTruncate(t *testing.T) {
	tests := []struct {
		input     string
		wantWidth int
	}{
		{"abc", 3},
		{"タナカ", 6},
		{"ﾀﾅｶ", 3},
		{"大阪 University", 15},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantWidth, DisplayWidth(tt.input), tt.input)
	}

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "タナカ...", truncate("タナカタロウ", 10))
	assert.LessOrEqual(t, DisplayWidth(truncate("タナカタロウタナカタロウ", 9)), 9)
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "タ  ", pad("タ", 4))
}
