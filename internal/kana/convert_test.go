// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kana

import (
	"sync"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"regular syllables", "tanaka", "タナカ"},
		{"voiced syllables", "suzuki", "スズキ"},
		{"cluster before base", "kyaku", "キャク"},
		{"geminate before ta", "kitta", "キッタ"},
		{"geminate inside surname", "hattori", "ハットリ"},
		{"geminate s", "issa", "イッサ"},
		{"double n is not geminate", "konno", "コンノ"},
		{"syllabic n before consonant", "sanna", "サンナ"},
		{"trailing n", "jun", "ジュン"},
		{"ny cluster wins over syllabic n", "kenya", "ケニャ"},
		{"n before y without cluster", "nye", "ニエ"},
		{"tsu and chi", "matsumoto", "マツモト"},
		{"chi digraph", "michiko", "ミチコ"},
		{"fu and ji", "fujita", "フジタ"},
		{"sh cluster", "shuhei", "シュヘイ"},
		{"loanword ti", "ti", "ティ"},
		{"wo", "wo", "ヲ"},
		{"ja at end", "ja", "ジャ"},
		{"l read as r", "lina", "リナ"},
		{"punctuation and trailing consonants", "O'Brien", "オリエン"},
		{"uppercase", "TANAKA", "タナカ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.input, true))
		})
	}
}

func TestConvertLongVowels(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		longVowel bool
		want      string
	}{
		{"macron o becomes ou", "katō", true, "カトウ"},
		{"uppercase macron", "KATŌ", true, "カトウ"},
		{"combining macron", "kato\u0304", true, "カトウ"},
		{"circumflex o becomes ou", "satô", true, "サトウ"},
		{"macron u doubles", "yūko", true, "ユウコ"},
		{"oh before consonant", "ohmura", true, "オウムラ"},
		{"oh at end", "oh", true, "オウ"},
		{"oh before vowel stays", "ohe", true, "オヘ"},
		{"ouu collapses", "ōuchi", true, "オウチ"},
		{"ouu kept without long vowel", "ōuchi", false, "オウウチ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.input, tt.longVowel))
		})
	}
}

func TestConvertDegradesGracefully(t *testing.T) {
	inputs := []string{
		"", " ", "\t\n", "12345", "🙂🙂", "タナカ", "田中", "---", "x", "qqq",
		"zzzzzzzz", "nnnn", "y", "ṅ", "a1b2c3", "\xff\xfe",
	}
	for _, in := range inputs {
		got := Convert(in, true)
		for _, r := range got {
			assert.True(t, unicode.In(r, unicode.Katakana), "Convert(%q) = %q has non-katakana rune %q", in, got, r)
		}
	}

	assert.Equal(t, "", Convert("12345", true))
	assert.Equal(t, "", Convert("タナカ", true))
	assert.Equal(t, "", Convert("🙂", false))
}

func TestConvertDeterministic(t *testing.T) {
	for _, in := range []string{"watanabe", "Ōuchi", "kyaku", "hattori"} {
		assert.Equal(t, Convert(in, true), Convert(in, true))
	}
}

func TestConvertConcurrent(t *testing.T) {
	want := Convert("yamaguchi", true)

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Convert("yamaguchi", true)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
