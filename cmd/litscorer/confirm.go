// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litscorer/internal/export"
	"github.com/pdiddy/litscorer/internal/kana"
	"github.com/pdiddy/litscorer/pkg/types"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm [AUTHOR]",
	Short: "Confirm or correct the katakana of an author",
	Long: `Confirm records a reviewed katakana rendering for an author display name
(as shown in the Author column of search output). Confirmed renderings
replace the transliterator's output in later searches and are marked in the
ConfirmKana column.

Without --family or --given, the current transliteration of the name is
confirmed as is; the display name is split into given (first word) and family
(last word). Use --list to show confirmations and --delete to remove one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfirm,
}

func init() {
	confirmCmd.Flags().String("family", "", "corrected katakana family name")
	confirmCmd.Flags().String("given", "", "corrected katakana given name")
	confirmCmd.Flags().String("note", "", "free-text note stored with the confirmation")
	confirmCmd.Flags().Bool("list", false, "list confirmations")
	confirmCmd.Flags().Bool("delete", false, "delete the confirmation for AUTHOR")
	confirmCmd.Flags().Bool("json", false, "output the list as JSON")

	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if list, _ := cmd.Flags().GetBool("list"); list {
		entries, err := st.List(ctx)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return export.FormatJSON(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No confirmations.")
			return nil
		}
		for _, c := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\n", c.Author, c.KanaName(), c.ConfirmedAt.Format("2006-01-02"))
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide an author name, or use --list")
	}
	author := strings.TrimSpace(args[0])

	if del, _ := cmd.Flags().GetBool("delete"); del {
		if err := st.Delete(ctx, author); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted confirmation for %s\n", author)
		return nil
	}

	family, _ := cmd.Flags().GetString("family")
	given, _ := cmd.Flags().GetString("given")
	note, _ := cmd.Flags().GetString("note")
	if family == "" && given == "" {
		name, err := transliterateDisplayName(author, cfg)
		if err != nil {
			return err
		}
		if name.Empty() {
			return fmt.Errorf("no katakana for %q: pass --family and/or --given", author)
		}
		family, given = name.Family, name.Given
	}

	c := types.Confirmation{Author: author, KanaFamily: family, KanaGiven: given, Note: note}
	if err := st.Confirm(ctx, c); err != nil {
		return err
	}
	fmt.Fprintf(out, "Confirmed %s as %s\n", author, c.KanaName())
	return nil
}

// transliterateDisplayName converts an author display name the way search
// aggregation does for rows without separate name fields.
func transliterateDisplayName(author string, cfg types.Config) (kana.Name, error) {
	parts := strings.Fields(author)
	if len(parts) == 0 {
		return kana.Name{}, nil
	}
	given, family := parts[0], ""
	if len(parts) >= 2 {
		family = parts[len(parts)-1]
	}
	eng, err := kana.LoadEngine(cfg.Kana.OverridesFiles...)
	if err != nil {
		return kana.Name{}, err
	}
	return eng.Transliterate(family, given, kana.Options{
		LongVowel:    cfg.Kana.LongVowel,
		SurnameLongO: cfg.Kana.SurnameLongO,
	}), nil
}
