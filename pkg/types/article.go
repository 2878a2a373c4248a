// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litscorer pipeline:
// articles returned by the literature search, author-level rows exploded
// from them, and the aggregated author scores with katakana names.
package types

// Article is one search hit as returned by Europe PMC (resultType=core),
// reduced to the fields the scoring pipeline reads.
type Article struct {
	// ID is the source record identifier (e.g. "34567890" or "PPR123456").
	ID string `json:"id" yaml:"id"`

	// PMID is the PubMed identifier, empty for records outside MEDLINE.
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`

	// Source is the Europe PMC source code (MED, PMC, PPR, ...).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	Title   string `json:"title" yaml:"title"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// PubYear is the publication year as reported by the source.
	PubYear string `json:"pub_year,omitempty" yaml:"pub_year,omitempty"`

	// FirstPublicationDate is YYYY-MM-DD when known.
	FirstPublicationDate string `json:"first_publication_date,omitempty" yaml:"first_publication_date,omitempty"`

	// Authors lists the byline in source order.
	Authors []ArticleAuthor `json:"authors" yaml:"authors"`
}

// Key returns the identifier used to count unique articles: the PMID when
// present, otherwise the source ID.
func (a Article) Key() string {
	if a.PMID != "" {
		return a.PMID
	}
	return a.ID
}

// ArticleAuthor is one byline entry.
type ArticleAuthor struct {
	FullName  string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`

	// Affiliations lists the author's affiliation strings in source order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}
