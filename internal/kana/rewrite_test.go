// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kana

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Katō", "katou"},
		{"Ōno", "ouno"},
		{"Sâto", "saato"},
		{"Yūki", "yuuki"},
		{"katō", "katou"},
		{"O'Neil-3", "oneil"},
		{"Jun-ichi", "junichi"},
		{"田中", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.input); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRewriteOh(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ohta", "outa"},
		{"oh", "ou"},
		{"kohno", "kouno"},
		{"ohashi", "ohashi"},
		{"ohoh", "ohou"},
		{"tanaka", "tanaka"},
	}
	for _, tt := range tests {
		if got := rewriteOh(tt.input); got != tt.want {
			t.Errorf("rewriteOh(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRewriteRyo(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ryo", "ryou"},
		{"ryota", "ryouta"},
		{"ryoichi", "ryouiichi"},
		{"ryoiki", "ryouiiki"},
		{"hryoi", "hryouii"},
		{"kuryo", "kuryou"},
		{"ryoe", "ryoe"},
		{"ryuji", "ryuji"},
		{"ryo-ta", "ryo-ta"},
	}
	for _, tt := range tests {
		if got := rewriteRyo(tt.input); got != tt.want {
			t.Errorf("rewriteRyo(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
