// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/pdiddy/litscorer/pkg/types"
)

// Column widths of the score table, in terminal cells.
const (
	authorCols = 28
	affCols    = 40
	kanaCols   = 20
)

// FormatScoresTable writes the first limit scores as an aligned text table.
// A limit of zero or less writes all of them. Katakana and other wide
// characters count as two cells.
func FormatScoresTable(w io.Writer, scores []types.AuthorScore, limit int) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No authors found.")
		return err
	}
	shown := scores
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	fmt.Fprintf(w, "%-4s  %s  %s  %s  %5s  %4s  %s\n",
		"Rank", pad("Author", authorCols), pad("MainAffiliation", affCols), pad("KanaName", kanaCols),
		"Score", "Arts", "OK")
	fmt.Fprintln(w, strings.Repeat("-", 4+2+authorCols+2+affCols+2+kanaCols+2+5+2+4+2+2))

	for i, s := range shown {
		ok := ""
		if s.ConfirmKana {
			ok = "✓"
		}
		if _, err := fmt.Fprintf(w, "%-4d  %s  %s  %s  %5d  %4d  %s\n",
			i+1,
			pad(truncate(s.Author, authorCols), authorCols),
			pad(truncate(s.MainAffiliation, affCols), affCols),
			pad(truncate(s.KanaName, kanaCols), kanaCols),
			s.Score, s.Articles, ok,
		); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d authors", len(scores))
	if err != nil {
		return err
	}
	if len(shown) < len(scores) {
		_, err = fmt.Fprintf(w, " (showing %d)", len(shown))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// FormatJSON writes v as indented JSON.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// truncate shortens s to at most cols cells, ending in "..." when cut.
func truncate(s string, cols int) string {
	if DisplayWidth(s) <= cols {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runeWidth(r)
		if used+rw > cols-3 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String() + "..."
}

// pad right-fills s with spaces to cols cells.
func pad(s string, cols int) string {
	if n := DisplayWidth(s); n < cols {
		return s + strings.Repeat(" ", cols-n)
	}
	return s
}
