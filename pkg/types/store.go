// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Confirmation is a reviewed katakana rendering for one author display name.
type Confirmation struct {
	Author      string    `json:"author" yaml:"author"`
	KanaFamily  string    `json:"kana_family" yaml:"kana_family"`
	KanaGiven   string    `json:"kana_given" yaml:"kana_given"`
	Note        string    `json:"note,omitempty" yaml:"note,omitempty"`
	ConfirmedAt time.Time `json:"confirmed_at" yaml:"confirmed_at"`
}

// KanaName returns the family and given katakana joined without a separator.
func (c Confirmation) KanaName() string {
	return c.KanaFamily + c.KanaGiven
}

// SearchRecord is one entry of the search history.
type SearchRecord struct {
	ID             int64     `json:"id" yaml:"id"`
	Query          string    `json:"query" yaml:"query"`
	HitCount       int       `json:"hit_count" yaml:"hit_count"`
	MedlineHits    int       `json:"medline_hits" yaml:"medline_hits"`
	Fetched        int       `json:"fetched" yaml:"fetched"`
	UniqueArticles int       `json:"unique_articles" yaml:"unique_articles"`
	Relaxed        bool      `json:"relaxed" yaml:"relaxed"`
	Timestamp      time.Time `json:"timestamp" yaml:"timestamp"`
}
