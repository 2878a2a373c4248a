// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AuthorRow is one (article, author) pair. Score is 2 for the first
// author of an article and 1 for every other position.
type AuthorRow struct {
	PMID            string `json:"pmid" yaml:"pmid"`
	Title           string `json:"title" yaml:"title"`
	Journal         string `json:"journal" yaml:"journal"`
	Year            int    `json:"year,omitempty" yaml:"year,omitempty"`
	AuthorOrder     int    `json:"author_order" yaml:"author_order"`
	FullName        string `json:"full_name" yaml:"full_name"`
	FirstName       string `json:"first_name" yaml:"first_name"`
	LastName        string `json:"last_name" yaml:"last_name"`
	DisplayName     string `json:"display_name" yaml:"display_name"`
	Affiliation     string `json:"affiliation" yaml:"affiliation"`
	MainAffiliation string `json:"main_affiliation" yaml:"main_affiliation"`
	DepartmentGuess string `json:"department_guess" yaml:"department_guess"`
	Score           int    `json:"score" yaml:"score"`
}

// Author returns the name rows are grouped by: the display name, or the
// source's full name when the display name is empty.
func (r AuthorRow) Author() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.FullName
}

// AuthorScore is the aggregated score of one author at one main affiliation
// together with the katakana rendering of the author's name.
type AuthorScore struct {
	Author          string `json:"author" yaml:"author"`
	MainAffiliation string `json:"main_affiliation" yaml:"main_affiliation"`
	KanaName        string `json:"kana_name" yaml:"kana_name"`
	KanaLastName    string `json:"kana_last_name" yaml:"kana_last_name"`
	KanaFirstName   string `json:"kana_first_name" yaml:"kana_first_name"`
	Score           int    `json:"score" yaml:"score"`
	Articles        int    `json:"articles" yaml:"articles"`

	// ConfirmKana is set when a reviewer has confirmed the katakana. Engine
	// output is provisional until then.
	ConfirmKana bool `json:"confirm_kana" yaml:"confirm_kana"`
}
