// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litscorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the Europe PMC search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxRows caps the number of records fetched across all pages (default 5000).
	MaxRows int `json:"max_rows" yaml:"max_rows" mapstructure:"max_rows"`

	// PageSize is the number of records requested per page (default and maximum 1000).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// PageDelay is the pause between consecutive page requests (default 200ms).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay" mapstructure:"page_delay"`

	// Synonym asks Europe PMC to expand MeSH synonyms.
	Synonym bool `json:"synonym" yaml:"synonym" mapstructure:"synonym"`

	// RelaxIfZero re-runs an empty search with relaxed filters.
	RelaxIfZero bool `json:"relax_if_zero" yaml:"relax_if_zero" mapstructure:"relax_if_zero"`

	// MaxRetries bounds retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// KanaConfig holds settings for katakana transliteration.
type KanaConfig struct {
	// LongVowel collapses over-generated long vowels (default true).
	LongVowel bool `json:"long_vowel" yaml:"long_vowel" mapstructure:"long_vowel"`

	// SurnameLongO elongates trailing to/do for known surnames (default true).
	SurnameLongO bool `json:"surname_long_o" yaml:"surname_long_o" mapstructure:"surname_long_o"`

	// OverridesFiles are extra override dictionaries layered over the built-in ones.
	OverridesFiles []string `json:"overrides_files,omitempty" yaml:"overrides_files,omitempty" mapstructure:"overrides_files"`

	// Workers bounds concurrent transliteration during aggregation (default 8).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// CSVEncoding selects the byte encoding of exported CSV files.
type CSVEncoding string

const (
	// EncodingUTF8BOM writes UTF-8 with a byte order mark so spreadsheet
	// applications detect the encoding.
	EncodingUTF8BOM  CSVEncoding = "utf-8-sig"
	EncodingUTF8     CSVEncoding = "utf-8"
	EncodingShiftJIS CSVEncoding = "shift_jis"
)

// ExportConfig holds settings for CSV export.
type ExportConfig struct {
	Encoding CSVEncoding `json:"encoding" yaml:"encoding" mapstructure:"encoding"`

	// RowsFile and ScoresFile are the default output paths; empty disables.
	RowsFile   string `json:"rows_file,omitempty" yaml:"rows_file,omitempty" mapstructure:"rows_file"`
	ScoresFile string `json:"scores_file,omitempty" yaml:"scores_file,omitempty" mapstructure:"scores_file"`
}

// StoreConfig holds settings for the SQLite confirmation store.
type StoreConfig struct {
	// Path is the database file (default "litscorer.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from litscorer.yaml, the environment,
// and flags.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Kana   KanaConfig   `json:"kana" yaml:"kana" mapstructure:"kana"`
	Export ExportConfig `json:"export" yaml:"export" mapstructure:"export"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
