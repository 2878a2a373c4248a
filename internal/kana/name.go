// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kana transliterates romanized Japanese personal names to katakana.
//
// Conversion is rule based (see Convert) with two whole-name override
// dictionaries taking precedence, plus name-specific heuristics: long-O
// elongation for a closed list of surnames and "ryo" elongation for given
// names. All tables are built once at package initialization and never
// modified, so every function here is safe for concurrent use.
//
// Results are best effort. An empty Name means the input could not be
// transliterated, not that an error occurred.
package kana

import "strings"

// Options selects the optional long-vowel heuristics.
type Options struct {
	// LongVowel collapses the over-generated オウウ to オウ.
	LongVowel bool `json:"long_vowel" yaml:"long_vowel" mapstructure:"long_vowel"`

	// SurnameLongO elongates a trailing ト/ド for the closed long-O surname list.
	SurnameLongO bool `json:"surname_long_o" yaml:"surname_long_o" mapstructure:"surname_long_o"`
}

// DefaultOptions enables both heuristics.
func DefaultOptions() Options {
	return Options{LongVowel: true, SurnameLongO: true}
}

// Name is the katakana rendering of one author.
type Name struct {
	Family string `json:"family" yaml:"family"`
	Given  string `json:"given" yaml:"given"`
	// Full is Family immediately followed by Given.
	Full string `json:"full" yaml:"full"`
}

// Empty reports whether nothing could be transliterated.
func (n Name) Empty() bool {
	return n.Full == ""
}

// Engine resolves names against a fixed pair of override dictionaries.
// An Engine is immutable once built.
type Engine struct {
	family *Dictionary
	given  *Dictionary
}

// NewEngine builds an engine from the embedded overrides with extra layered
// on top in order.
func NewEngine(extra ...Overrides) *Engine {
	layers := append([]Overrides{builtin}, extra...)
	fam := make([][]Entry, len(layers))
	giv := make([][]Entry, len(layers))
	for i, o := range layers {
		fam[i] = o.Family
		giv[i] = o.Given
	}
	return &Engine{family: newDictionary(fam...), given: newDictionary(giv...)}
}

// LoadEngine builds an engine from the embedded overrides plus the override
// files at paths.
func LoadEngine(paths ...string) (*Engine, error) {
	extra := make([]Overrides, 0, len(paths))
	for _, p := range paths {
		o, err := LoadOverrides(p)
		if err != nil {
			return nil, err
		}
		extra = append(extra, o)
	}
	return NewEngine(extra...), nil
}

var (
	builtin       = mustBuiltin()
	defaultEngine = NewEngine()
)

// Default returns the engine backed by the embedded overrides only.
func Default() *Engine { return defaultEngine }

// Transliterate converts a family and given name with the default engine.
func Transliterate(family, given string, opts Options) Name {
	return defaultEngine.Transliterate(family, given, opts)
}

// FamilyDictionary returns the family-name overrides.
func (e *Engine) FamilyDictionary() *Dictionary { return e.family }

// GivenDictionary returns the given-name overrides.
func (e *Engine) GivenDictionary() *Dictionary { return e.given }

// Transliterate converts a family and given name. Either may be empty.
func (e *Engine) Transliterate(family, given string, opts Options) Name {
	f := e.Family(family, opts)
	g := e.Given(given, opts)
	return Name{Family: f, Given: g, Full: f + g}
}

// Family converts a family name: override first, then rule-based
// conversion followed by the long-O surname rule when enabled.
func (e *Engine) Family(name string, opts Options) string {
	if k, ok := e.family.Lookup(name); ok {
		return k
	}
	k := Convert(name, opts.LongVowel)
	if opts.SurnameLongO {
		k = applySurnameLongO(foldName(name), k)
	}
	return k
}

// Given converts a given name: override first, then the "ryo" rewrite and
// rule-based conversion.
func (e *Engine) Given(name string, opts Options) string {
	if k, ok := e.given.Lookup(name); ok {
		return k
	}
	return Convert(rewriteRyo(foldName(name)), opts.LongVowel)
}

// applySurnameLongO appends ウ to a trailing ト or ド for names in the
// long-O surname list. lower must be the folded romanized name.
func applySurnameLongO(lower, kat string) string {
	if _, ok := longOSurnames[lower]; !ok {
		return kat
	}
	switch {
	case strings.HasSuffix(lower, "to") && strings.HasSuffix(kat, "ト") && !strings.HasSuffix(kat, "トウ"):
		return kat + "ウ"
	case strings.HasSuffix(lower, "do") && strings.HasSuffix(kat, "ド") && !strings.HasSuffix(kat, "ドウ"):
		return kat + "ウ"
	}
	return kat
}
