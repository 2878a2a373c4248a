// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litscorer/internal/export"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `History lists searches recorded in the store, newest first, with their
hit counts and the number of articles fetched.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of searches to show (0 = all)")
	historyCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := st.Searches(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return export.FormatJSON(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No searches recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-16s  %8s  %8s  %7s  %7s  %s\n", "When", "Hits", "MEDLINE", "Fetched", "Unique", "Query")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, r := range records {
		medline := fmt.Sprint(r.MedlineHits)
		if r.MedlineHits < 0 {
			medline = "-"
		}
		query := r.Query
		if r.Relaxed {
			query = "[relaxed] " + query
		}
		fmt.Fprintf(out, "%-16s  %8d  %8s  %7d  %7d  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.HitCount, medline, r.Fetched, r.UniqueArticles, query)
	}
	return nil
}
