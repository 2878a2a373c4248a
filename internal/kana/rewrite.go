// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kana

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var macrons = strings.NewReplacer(macronReplacer...)

// normalize prepares a raw name token for segmentation: it composes
// combining marks (so "o" + U+0304 becomes "ō"), lowercases, expands
// macrons and circumflexes, and drops every byte that is not a-z.
func normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = macrons.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'a' && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// rewriteOh turns the Hepburn long-o spelling "oh" into "ou" when it is
// followed by a consonant or ends the token. "oh" before a vowel is an
// o followed by an h-row syllable and is left alone.
func rewriteOh(s string) string {
	return rewriteBefore(s, "oh", "ou", "")
}

// rewriteRyo elongates the given-name syllable "ryo": "ryo" before a
// consonant or at the end becomes "ryou", and "ryo" before an i becomes
// "ryoui" ("ryoiki" -> "ryouiiki").
func rewriteRyo(s string) string {
	return rewriteBefore(s, "ryo", "ryou", "ryoui")
}

// rewriteBefore replaces each occurrence of pat with repl when the next
// byte is a consonant or the string ends there. When beforeI is set, an
// occurrence followed by 'i' is replaced with beforeI and the 'i' is kept.
// Input must already be lowercase.
func rewriteBefore(s, pat, repl, beforeI string) string {
	if !strings.Contains(s, pat) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], pat) {
			b.WriteByte(s[i])
			i++
			continue
		}
		next := i + len(pat)
		switch {
		case next == len(s) || isConsonant(s[next]):
			b.WriteString(repl)
			i = next
		case beforeI != "" && s[next] == 'i':
			b.WriteString(beforeI)
			i = next
		default:
			b.WriteString(pat)
			i = next
		}
	}
	return b.String()
}
