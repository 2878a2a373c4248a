// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kana

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.yaml.in/yaml/v3"
)

//go:embed overrides.yaml
var builtinOverrides []byte

// Entry maps one whole romanized name to its katakana.
type Entry struct {
	Name string `yaml:"name"`
	Kana string `yaml:"kana"`
}

// Overrides is the on-disk form of an override file: one list of entries
// per dictionary. Lists rather than maps keep repeated names visible.
type Overrides struct {
	Family []Entry `yaml:"family"`
	Given  []Entry `yaml:"given"`
}

// ParseOverrides decodes an override file. Entries with an empty name or
// empty katakana are rejected.
func ParseOverrides(data []byte) (Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parsing overrides: %w", err)
	}
	for _, list := range []struct {
		name    string
		entries []Entry
	}{{"family", o.Family}, {"given", o.Given}} {
		for i, e := range list.entries {
			if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Kana) == "" {
				return Overrides{}, fmt.Errorf("%s entry %d: name and kana are required", list.name, i+1)
			}
		}
	}
	return o, nil
}

// LoadOverrides reads and parses an override file from disk.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("reading overrides %s: %w", path, err)
	}
	o, err := ParseOverrides(data)
	if err != nil {
		return Overrides{}, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Duplicate records a name defined more than once in a single override
// file. Values lists every katakana in definition order; the last is kept.
type Duplicate struct {
	Name   string
	Values []string
}

// Kept returns the value that won.
func (d Duplicate) Kept() string {
	return d.Values[len(d.Values)-1]
}

// Dictionary is an immutable whole-name lookup table.
type Dictionary struct {
	entries    map[string]string
	duplicates []Duplicate
}

// newDictionary merges layers in order. Later entries replace earlier ones,
// within a layer and across layers. Only repeats within one layer are
// recorded as duplicates; a later layer replacing an earlier one is the
// point of layering.
func newDictionary(layers ...[]Entry) *Dictionary {
	d := &Dictionary{entries: make(map[string]string)}
	for _, layer := range layers {
		seen := make(map[string][]string)
		var order []string
		for _, e := range layer {
			key := foldName(e.Name)
			if _, ok := seen[key]; !ok {
				order = append(order, key)
			}
			seen[key] = append(seen[key], e.Kana)
			d.entries[key] = e.Kana
		}
		for _, key := range order {
			if vals := seen[key]; len(vals) > 1 {
				d.duplicates = append(d.duplicates, Duplicate{Name: key, Values: vals})
			}
		}
	}
	return d
}

// Lookup returns the override for name, matched case-insensitively
// against the whole token. Surrounding whitespace is part of the token.
func (d *Dictionary) Lookup(name string) (string, bool) {
	k, ok := d.entries[foldName(name)]
	return k, ok
}

// Len returns the number of distinct names.
func (d *Dictionary) Len() int { return len(d.entries) }

// Entries returns the dictionary sorted by name.
func (d *Dictionary) Entries() []Entry {
	entries := lo.MapToSlice(d.entries, func(name, kana string) Entry {
		return Entry{Name: name, Kana: kana}
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Duplicates returns the names that were defined more than once.
func (d *Dictionary) Duplicates() []Duplicate {
	return append([]Duplicate(nil), d.duplicates...)
}

func foldName(name string) string {
	return strings.ToLower(name)
}

func mustBuiltin() Overrides {
	o, err := ParseOverrides(builtinOverrides)
	if err != nil {
		panic("kana: embedded overrides.yaml: " + err.Error())
	}
	return o
}
