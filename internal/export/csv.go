// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes author rows and author scores as CSV, JSON, or a
// plain-text table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/pdiddy/litscorer/pkg/types"
)

// Default CSV file names.
const (
	RowsFileName   = "literature_author_rows.csv"
	ScoresFileName = "literature_author_scores.csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	rowsHeader = []string{
		"PMID", "Title", "Journal", "Year", "AuthorOrder", "FullName", "FirstName", "LastName",
		"DisplayName", "Affiliation", "MainAffiliation", "Department_guess", "Score",
	}
	scoresHeader = []string{
		"Author", "MainAffiliation", "KanaName", "KanaLastName", "KanaFirstName", "Score", "Articles", "ConfirmKana",
	}
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// encodedWriter wraps w so that bytes written are in enc. The returned
// closer flushes any buffered transform state and must be called.
func encodedWriter(w io.Writer, enc types.CSVEncoding) (io.Writer, io.Closer, error) {
	switch enc {
	case "", types.EncodingUTF8BOM:
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, nil, fmt.Errorf("writing byte order mark: %w", err)
		}
		return w, nopCloser{}, nil
	case types.EncodingUTF8:
		return w, nopCloser{}, nil
	case types.EncodingShiftJIS:
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder()))
		return tw, tw, nil
	default:
		return nil, nil, fmt.Errorf("unsupported CSV encoding %q (want %s, %s, or %s)",
			enc, types.EncodingUTF8BOM, types.EncodingUTF8, types.EncodingShiftJIS)
	}
}

// writeCSV encodes header and records to w in enc.
func writeCSV(w io.Writer, enc types.CSVEncoding, header []string, records [][]string) error {
	ew, closer, err := encodedWriter(w, enc)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(ew)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing CSV records: %w", err)
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("flushing %s output: %w", enc, err)
	}
	return nil
}

// WriteAuthorRowsCSV writes one line per author row.
func WriteAuthorRowsCSV(w io.Writer, rows []types.AuthorRow, enc types.CSVEncoding) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.PMID, r.Title, r.Journal, yearString(r.Year), strconv.Itoa(r.AuthorOrder),
			r.FullName, r.FirstName, r.LastName, r.DisplayName, r.Affiliation,
			r.MainAffiliation, r.DepartmentGuess, strconv.Itoa(r.Score),
		}
	}
	return writeCSV(w, enc, rowsHeader, records)
}

// WriteAuthorScoresCSV writes one line per aggregated author score.
func WriteAuthorScoresCSV(w io.Writer, scores []types.AuthorScore, enc types.CSVEncoding) error {
	records := make([][]string, len(scores))
	for i, s := range scores {
		records[i] = []string{
			s.Author, s.MainAffiliation, s.KanaName, s.KanaLastName, s.KanaFirstName,
			strconv.Itoa(s.Score), strconv.Itoa(s.Articles), confirmString(s.ConfirmKana),
		}
	}
	return writeCSV(w, enc, scoresHeader, records)
}

// WriteFile creates path and passes it to write, closing it afterwards.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// confirmString renders ConfirmKana the way spreadsheet checkbox columns
// round-trip it.
func confirmString(ok bool) string {
	if ok {
		return "True"
	}
	return "False"
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
