// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Filters holds the user-facing search criteria. BuildQuery turns them
// into a Europe PMC query string.
type Filters struct {
	Disease    string `json:"disease,omitempty" yaml:"disease,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
	YearFrom   int    `json:"year_from" yaml:"year_from"`
	YearTo     int    `json:"year_to" yaml:"year_to"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
	Keywords   string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Text availability.
	HasAbstract bool `json:"has_abstract,omitempty" yaml:"has_abstract,omitempty"`
	OpenAccess  bool `json:"open_access,omitempty" yaml:"open_access,omitempty"`
	HasFullText bool `json:"has_full_text,omitempty" yaml:"has_full_text,omitempty"`

	// ArticleTypes holds names from ArticleTypes(); unknown names are ignored.
	ArticleTypes []string `json:"article_types,omitempty" yaml:"article_types,omitempty"`

	SourceMED        bool `json:"source_med,omitempty" yaml:"source_med,omitempty"`
	SourcePMC        bool `json:"source_pmc,omitempty" yaml:"source_pmc,omitempty"`
	SourcePPR        bool `json:"source_ppr,omitempty" yaml:"source_ppr,omitempty"`
	ExcludePreprints bool `json:"exclude_preprints,omitempty" yaml:"exclude_preprints,omitempty"`
}

// DefaultFilters returns MEDLINE-only filters excluding preprints for the
// given year range.
func DefaultFilters(from, to int) Filters {
	return Filters{
		YearFrom:         from,
		YearTo:           to,
		SourceMED:        true,
		ExcludePreprints: true,
	}
}

// articleTypes maps the selectable article types to PUB_TYPE values.
var articleTypes = map[string]string{
	"Clinical Trial":              "Clinical Trial",
	"Meta-Analysis":               "Meta-Analysis",
	"Randomized Controlled Trial": "Randomized Controlled Trial",
	"Review":                      "Review",
	"Systematic Review":           "Systematic Review",
}

// ArticleTypes lists the accepted article type names.
func ArticleTypes() []string {
	return []string{"Clinical Trial", "Meta-Analysis", "Randomized Controlled Trial", "Review", "Systematic Review"}
}

const (
	minYear = 1900
	maxYear = 2100
)

// Validate reports filters that cannot produce a meaningful search.
func (f Filters) Validate() error {
	if sanitize(f.Disease) == "" && sanitize(f.Keywords) == "" && sanitize(f.Department) == "" {
		return fmt.Errorf("provide at least one of disease, keywords, or department")
	}
	if f.YearFrom < minYear || f.YearFrom > maxYear || f.YearTo < minYear || f.YearTo > maxYear {
		return fmt.Errorf("year range must be within %d-%d", minYear, maxYear)
	}
	if f.YearFrom > f.YearTo {
		return fmt.Errorf("year from (%d) is after year to (%d)", f.YearFrom, f.YearTo)
	}
	return nil
}

// Relaxed returns a copy with keywords, open-access and full-text flags,
// article types, and preprints dropped. Preprints stay excluded.
func (f Filters) Relaxed() Filters {
	r := f
	r.Keywords = ""
	r.OpenAccess = false
	r.HasFullText = false
	r.ArticleTypes = nil
	r.SourcePPR = false
	r.ExcludePreprints = true
	return r
}

var (
	quoteChars    = regexp.MustCompile(`["“”„‟«»‹›「」『』＂]`)
	spaceRuns     = regexp.MustCompile(`\s+`)
	deptSeparator = regexp.MustCompile(`,|、|;|/|\|`)
	kwSeparator   = regexp.MustCompile(`,|、|;|/`)
)

// sanitize strips quote characters and collapses whitespace.
func sanitize(s string) string {
	s = quoteChars.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
}

// splitTerms splits s on sep and returns the non-empty sanitized terms.
func splitTerms(s string, sep *regexp.Regexp) []string {
	return lo.FilterMap(sep.Split(s, -1), func(t string, _ int) (string, bool) {
		t = sanitize(t)
		return t, t != ""
	})
}

func quoted(terms []string) []string {
	return lo.Map(terms, func(t string, _ int) string { return `"` + t + `"` })
}

// departmentVariants expands one department term into the affiliation
// phrasings seen in English and Japanese bylines.
func departmentVariants(t string) []string {
	return []string{
		`AFF:"` + t + `"`,
		`AFF:"Department of ` + t + `"`,
		`AFF:"Division of ` + t + `"`,
		`AFF:"Dept. of ` + t + `"`,
		`AFF:"` + t + ` Department"`,
		`AFF:"` + t + ` Division"`,
		`AFF:"` + t + ` Unit"`,
		`AFF:"` + t + `科"`,
		`AFF:"` + t + `部"`,
		`AFF:"` + t + `講座"`,
	}
}

// BuildQuery renders filters as a Europe PMC query. Parts are joined with
// AND; an empty filter set yields "*".
func BuildQuery(f Filters) string {
	var parts []string

	if dz := sanitize(f.Disease); dz != "" {
		phrase := `"` + dz + `"`
		tokens := strings.Fields(dz)
		if len(tokens) > 1 {
			and := strings.Join(quoted(tokens), " AND ")
			parts = append(parts, fmt.Sprintf("(TITLE:%s OR ABSTRACT:%s OR TITLE:(%s) OR ABSTRACT:(%s))", phrase, phrase, and, and))
		} else {
			parts = append(parts, fmt.Sprintf("(TITLE:%s OR ABSTRACT:%s)", phrase, phrase))
		}
	}

	if terms := splitTerms(f.Department, deptSeparator); len(terms) > 0 {
		var exp []string
		for _, t := range terms {
			exp = append(exp, departmentVariants(t)...)
		}
		parts = append(parts, "("+strings.Join(exp, " OR ")+")")
	}

	if terms := splitTerms(f.Keywords, kwSeparator); len(terms) > 0 {
		or := strings.Join(quoted(terms), " OR ")
		parts = append(parts, fmt.Sprintf("(TITLE:(%s) OR ABSTRACT:(%s))", or, or))
	}

	if c := sanitize(f.Country); c != "" {
		parts = append(parts, `AFF:"`+c+`"`)
	}

	if f.YearFrom > 0 && f.YearTo > 0 {
		parts = append(parts, fmt.Sprintf("FIRST_PDATE:[%d-01-01 TO %d-12-31]", f.YearFrom, f.YearTo))
	}

	if f.HasAbstract {
		parts = append(parts, "HAS_ABSTRACT:Y")
	}
	if f.OpenAccess {
		parts = append(parts, "OPEN_ACCESS:Y")
	}
	if f.HasFullText {
		parts = append(parts, "HAS_FULL_TEXT:Y")
	}

	mapped := lo.FilterMap(f.ArticleTypes, func(a string, _ int) (string, bool) {
		v, ok := articleTypes[a]
		return v, ok
	})
	if len(mapped) > 0 {
		parts = append(parts, "PUB_TYPE:("+strings.Join(quoted(mapped), " OR ")+")")
	}

	var sources []string
	if f.SourceMED {
		sources = append(sources, "SRC:MED")
	}
	if f.SourcePMC {
		sources = append(sources, "SRC:PMC")
	}
	if f.SourcePPR {
		sources = append(sources, "SRC:PPR")
	}
	if len(sources) > 0 {
		parts = append(parts, "("+strings.Join(sources, " OR ")+")")
	}
	if f.ExcludePreprints {
		parts = append(parts, "NOT SRC:PPR")
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " AND ")
}

// MedlineOnly restricts an existing query to MEDLINE records.
func MedlineOnly(query string) string {
	return "(" + query + ") AND SRC:MED"
}
