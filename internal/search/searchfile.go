// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litscorer/pkg/types"
)

// SearchFile is the on-disk representation of a search and its articles.
// A saved search can be re-scored later without re-querying the API.
type SearchFile struct {
	Filters  Filters          `yaml:"filters"`
	Query    string           `yaml:"query"`
	Config   SearchFileConfig `yaml:"config"`
	Articles []types.Article  `yaml:"articles"`
	Summary  SearchSummary    `yaml:"summary"`
}

// SearchFileConfig stores the fetch settings that produced the articles.
type SearchFileConfig struct {
	MaxRows int  `yaml:"max_rows"`
	Synonym bool `yaml:"synonym"`
}

// SearchSummary stores result statistics and a timestamp.
type SearchSummary struct {
	HitCount       int       `yaml:"hit_count"`
	MedlineHits    int       `yaml:"medline_hits"`
	Fetched        int       `yaml:"fetched"`
	UniqueArticles int       `yaml:"unique_articles"`
	Relaxed        bool      `yaml:"relaxed,omitempty"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// NewSearchFile captures a finished search run.
func NewSearchFile(filters Filters, cfg types.SearchConfig, out Outcome) SearchFile {
	return SearchFile{
		Filters: filters,
		Query:   out.Query,
		Config: SearchFileConfig{
			MaxRows: cfg.MaxRows,
			Synonym: cfg.Synonym,
		},
		Articles: out.Articles,
		Summary: SearchSummary{
			HitCount:       out.HitCount,
			MedlineHits:    out.MedlineHits,
			Fetched:        len(out.Articles),
			UniqueArticles: out.UniqueArticles(),
			Relaxed:        out.Relaxed,
			Timestamp:      time.Now().UTC(),
		},
	}
}

// Outcome rebuilds the search outcome stored in the file.
func (sf SearchFile) Outcome() Outcome {
	return Outcome{
		Query:       sf.Query,
		Relaxed:     sf.Summary.Relaxed,
		Articles:    sf.Articles,
		HitCount:    sf.Summary.HitCount,
		MedlineHits: sf.Summary.MedlineHits,
	}
}

// WriteSearchFile saves a search to a YAML file.
func WriteSearchFile(path string, sf SearchFile) error {
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling search file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSearchFile loads a previously saved search from disk.
func ReadSearchFile(path string) (*SearchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search file: %w", err)
	}
	var sf SearchFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing search file: %w", err)
	}
	return &sf, nil
}
