// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors turns search results into author-level rows, scores
// authors by byline position, and aggregates the scores per author and
// main affiliation with katakana names attached.
package authors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/pdiddy/litscorer/pkg/types"
)

const (
	firstAuthorScore = 2
	coAuthorScore    = 1
)

var (
	departmentPattern = regexp.MustCompile(`(?i)(Department of [^.;|]+|Dept\. of [^.;|]+|Division of [^.;|]+|科[^；。|]+)`)
	affiliationSplit  = regexp.MustCompile(`\s*\|\s*`)
)

// Explode returns one row per (article, author) pair in byline order.
func Explode(articles []types.Article) []types.AuthorRow {
	var rows []types.AuthorRow
	for _, art := range articles {
		year := parseYear(art.PubYear)
		if year == 0 {
			year = parseYear(art.FirstPublicationDate)
		}
		for i, au := range art.Authors {
			joined := strings.Join(nonEmpty(au.Affiliations), " | ")
			score := coAuthorScore
			if i == 0 {
				score = firstAuthorScore
			}
			rows = append(rows, types.AuthorRow{
				PMID:            art.Key(),
				Title:           art.Title,
				Journal:         art.Journal,
				Year:            year,
				AuthorOrder:     i + 1,
				FullName:        au.FullName,
				FirstName:       au.FirstName,
				LastName:        au.LastName,
				DisplayName:     displayName(au),
				Affiliation:     joined,
				MainAffiliation: MainAffiliation(au.Affiliations),
				DepartmentGuess: ExtractDepartment(joined),
				Score:           score,
			})
		}
	}
	return rows
}

// FilterYears drops rows whose year is known and outside [from, to].
func FilterYears(rows []types.AuthorRow, from, to int) []types.AuthorRow {
	return lo.Filter(rows, func(r types.AuthorRow, _ int) bool {
		return r.Year == 0 || (r.Year >= from && r.Year <= to)
	})
}

// ExtractDepartment returns the first department-like phrase in an
// affiliation ("Department of ...", "Division of ...", "...科..."), or "".
func ExtractDepartment(aff string) string {
	if aff == "" {
		return ""
	}
	return strings.TrimSpace(departmentPattern.FindString(aff))
}

// MainAffiliation returns the first non-empty affiliation cut at the
// first "|" separator.
func MainAffiliation(affs []string) string {
	list := nonEmpty(affs)
	if len(list) == 0 {
		return ""
	}
	return strings.TrimSpace(affiliationSplit.Split(list[0], 2)[0])
}

func displayName(au types.ArticleAuthor) string {
	if au.FirstName != "" || au.LastName != "" {
		return strings.TrimSpace(au.FirstName + " " + au.LastName)
	}
	return au.FullName
}

// parseYear reads a leading four-digit year, returning 0 when absent.
func parseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return y
}

func nonEmpty(list []string) []string {
	return lo.Filter(list, func(s string, _ int) bool { return strings.TrimSpace(s) != "" })
}
