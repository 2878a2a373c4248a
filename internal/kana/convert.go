// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kana

import "strings"

// Convert transliterates one romanized name token to katakana.
//
// The token is normalized (macrons expanded, non-letters dropped, "oh"
// before a consonant read as a long o) and then segmented left to right.
// At each position the checks run in a fixed order: doubled consonant,
// palatalized cluster, irregular spelling (3 then 2 letters), syllabic n,
// consonant+vowel, bare vowel. Characters that match nothing are dropped.
//
// A doubled consonant emits ッ and consumes only the first letter; the
// second letter starts the next syllable.
//
// With longVowel set, the over-generated sequence オウウ collapses to オウ.
// Convert never fails; unusable input yields "".
func Convert(token string, longVowel bool) string {
	if token == "" {
		return ""
	}
	s := rewriteOh(normalize(token))

	var out strings.Builder
	for i := 0; i < len(s); {
		c := s[i]

		if i+1 < len(s) && s[i+1] == c && !isVowel(c) && c != 'n' {
			out.WriteString(smallTsu)
			i++
			continue
		}

		if k, n := lookup(clusterTable, s, i, 3); n > 0 {
			out.WriteString(k)
			i += n
			continue
		}
		if k, n := lookup(irregularTable, s, i, 3); n > 0 {
			out.WriteString(k)
			i += n
			continue
		}
		if k, n := lookup(irregularTable, s, i, 2); n > 0 {
			out.WriteString(k)
			i += n
			continue
		}

		if c == 'n' {
			switch {
			case i+1 < len(s) && isVowel(s[i+1]):
				out.WriteString(baseTable[s[i:i+2]])
				i += 2
			case i+1 < len(s) && s[i+1] == 'y':
				// Only the n is consumed; the y is read again on its own.
				out.WriteString(glideNi)
				i++
			default:
				out.WriteString(syllabicN)
				i++
			}
			continue
		}

		if i+1 < len(s) && !isVowel(c) && isVowel(s[i+1]) {
			head := c
			if head == 'l' {
				head = 'r'
			}
			if k, ok := baseTable[string([]byte{head, s[i+1]})]; ok {
				out.WriteString(k)
				i += 2
				continue
			}
		}

		if isVowel(c) {
			out.WriteString(baseTable[string(c)])
		}
		i++
	}

	kat := out.String()
	if longVowel {
		kat = strings.ReplaceAll(kat, longOUOver, longOU)
	}
	return kat
}

// lookup matches the window s[i:i+size] (shorter at the end of s) against
// table and returns the katakana and the number of bytes consumed.
func lookup(table map[string]string, s string, i, size int) (string, int) {
	end := min(i+size, len(s))
	window := s[i:end]
	if k, ok := table[window]; ok {
		return k, len(window)
	}
	return "", 0
}
