// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litscorer/internal/export"
	"github.com/pdiddy/litscorer/internal/kana"
)

var kanaCmd = &cobra.Command{
	Use:   "kana FAMILY [GIVEN]",
	Short: "Transliterate a romanized Japanese name to katakana",
	Long: `Kana converts a romanized family name and optional given name to
katakana using the override dictionaries and the rule-based converter.

With --stdin, each input line holds "family,given" (the given name may be
omitted) and one result is printed per line.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runKana,
}

var kanaBindings = []flagBinding{
	{"kana.long_vowel", "long-vowel"},
	{"kana.surname_long_o", "surname-long-o"},
	{"kana.overrides_files", "overrides"},
}

// kanaResult is one transliterated name.
type kanaResult struct {
	Family string    `json:"family"`
	Given  string    `json:"given"`
	Kana   kana.Name `json:"kana"`
}

func init() {
	kanaCmd.Flags().Bool("long-vowel", true, "collapse over-generated long vowels")
	kanaCmd.Flags().Bool("surname-long-o", true, "elongate trailing to/do of known surnames")
	kanaCmd.Flags().StringSlice("overrides", nil, "extra override dictionary files (YAML)")
	kanaCmd.Flags().Bool("stdin", false, "read family,given lines from standard input")
	kanaCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(kanaCmd)
}

func runKana(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, kanaBindings...)
	if err != nil {
		return err
	}
	eng, err := kana.LoadEngine(cfg.Kana.OverridesFiles...)
	if err != nil {
		return err
	}
	opts := kana.Options{LongVowel: cfg.Kana.LongVowel, SurnameLongO: cfg.Kana.SurnameLongO}

	useStdin, _ := cmd.Flags().GetBool("stdin")
	var inputs [][2]string
	switch {
	case useStdin:
		inputs, err = readNameLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	case len(args) == 0:
		return fmt.Errorf("provide a family name (and optionally a given name), or use --stdin")
	default:
		in := [2]string{args[0], ""}
		if len(args) == 2 {
			in[1] = args[1]
		}
		inputs = append(inputs, in)
	}

	results := make([]kanaResult, len(inputs))
	for i, in := range inputs {
		results[i] = kanaResult{Family: in[0], Given: in[1], Kana: eng.Transliterate(in[0], in[1], opts)}
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return export.FormatJSON(out, results)
	}
	for _, r := range results {
		name := strings.TrimSpace(r.Family + " " + r.Given)
		if r.Kana.Empty() {
			fmt.Fprintf(out, "%s\t(no katakana)\n", name)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", name, r.Kana.Full, r.Kana.Family, r.Kana.Given)
	}
	return nil
}

// readNameLines parses "family,given" lines, skipping blanks and lines
// starting with #.
func readNameLines(r io.Reader) ([][2]string, error) {
	var out [][2]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		family, given, _ := strings.Cut(line, ",")
		out = append(out, [2]string{strings.TrimSpace(family), strings.TrimSpace(given)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}
	return out, nil
}
