// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litscorer/internal/export"
	"github.com/pdiddy/litscorer/internal/kana"
)

var overridesCmd = &cobra.Command{
	Use:   "overrides",
	Short: "Inspect the katakana override dictionaries",
	Long: `Overrides inspects the family and given name override dictionaries: the
built-in ones plus any files configured under kana.overrides_files or passed
as arguments. Later files take precedence over earlier ones, and within one
file the last definition of a name wins.`,
}

var overridesCheckCmd = &cobra.Command{
	Use:   "check [FILES...]",
	Short: "Report names defined more than once in an override file",
	RunE:  runOverridesCheck,
}

var overridesListCmd = &cobra.Command{
	Use:   "list [FILES...]",
	Short: "List the merged override dictionaries",
	RunE:  runOverridesList,
}

func init() {
	overridesCheckCmd.Flags().Bool("strict", false, "exit with an error when duplicates are found")
	overridesListCmd.Flags().String("dict", "", "list only this dictionary: family or given")
	overridesListCmd.Flags().Bool("json", false, "output entries as JSON")

	overridesCmd.AddCommand(overridesCheckCmd)
	overridesCmd.AddCommand(overridesListCmd)
	rootCmd.AddCommand(overridesCmd)
}

func overridesEngine(cmd *cobra.Command, args []string) (*kana.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	paths := append(append([]string{}, cfg.Kana.OverridesFiles...), args...)
	return kana.LoadEngine(paths...)
}

func runOverridesCheck(cmd *cobra.Command, args []string) error {
	eng, err := overridesEngine(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := reportDuplicates(out, "family", eng.FamilyDictionary())
	total += reportDuplicates(out, "given", eng.GivenDictionary())
	fmt.Fprintf(out, "family: %d entries, given: %d entries, duplicates: %d\n",
		eng.FamilyDictionary().Len(), eng.GivenDictionary().Len(), total)

	if strict, _ := cmd.Flags().GetBool("strict"); strict && total > 0 {
		return fmt.Errorf("%d duplicate override name(s)", total)
	}
	return nil
}

func reportDuplicates(w io.Writer, dict string, d *kana.Dictionary) int {
	dups := d.Duplicates()
	for _, dup := range dups {
		fmt.Fprintf(w, "duplicate %s name %q: %s (kept %s)\n",
			dict, dup.Name, strings.Join(dup.Values, ", "), dup.Kept())
	}
	return len(dups)
}

func runOverridesList(cmd *cobra.Command, args []string) error {
	eng, err := overridesEngine(cmd, args)
	if err != nil {
		return err
	}

	dict, _ := cmd.Flags().GetString("dict")
	lists := map[string][]kana.Entry{}
	switch dict {
	case "":
		lists["family"] = eng.FamilyDictionary().Entries()
		lists["given"] = eng.GivenDictionary().Entries()
	case "family":
		lists["family"] = eng.FamilyDictionary().Entries()
	case "given":
		lists["given"] = eng.GivenDictionary().Entries()
	default:
		return fmt.Errorf("unknown dictionary %q: use family or given", dict)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return export.FormatJSON(out, lists)
	}
	for _, name := range []string{"family", "given"} {
		entries, ok := lists[name]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "# %s (%d)\n", name, len(entries))
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\n", e.Name, e.Kana)
		}
	}
	return nil
}
