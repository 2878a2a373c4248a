// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/litscorer/internal/authors"
	"github.com/pdiddy/litscorer/internal/export"
	"github.com/pdiddy/litscorer/internal/kana"
	"github.com/pdiddy/litscorer/internal/search"
	"github.com/pdiddy/litscorer/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Europe PMC and score the authors of the results",
	Long: `Search builds a Europe PMC query from the filter flags, fetches every
matching record with cursor pagination, and expands the bylines into author
rows. Authors are scored 2 points per first-author article and 1 point per
co-authored article, aggregated per main affiliation, and rendered in katakana.

At least one of --disease, --keywords, or --department is required. When the
search finds nothing and relax-if-zero is on, keywords, article types, and the
open access and full text flags are dropped and the search is retried.

Use --save to keep the fetched articles and --from-file to re-score them later
without querying the API again.`,
	RunE: runSearch,
}

var searchBindings = []flagBinding{
	{"search.max_rows", "max-rows"},
	{"search.synonym", "synonym"},
	{"search.relax_if_zero", "relax-if-zero"},
	{"kana.long_vowel", "long-vowel"},
	{"kana.surname_long_o", "surname-long-o"},
	{"kana.overrides_files", "overrides"},
	{"kana.workers", "workers"},
	{"export.encoding", "encoding"},
	{"export.rows_file", "rows-csv"},
	{"export.scores_file", "scores-csv"},
}

func init() {
	year := time.Now().Year()

	searchCmd.Flags().String("disease", "", "disease phrase searched in title and abstract")
	searchCmd.Flags().String("country", "", "country matched against affiliations (e.g. Japan)")
	searchCmd.Flags().Int("from", year-5, "first publication year")
	searchCmd.Flags().Int("to", year, "last publication year")
	searchCmd.Flags().String("department", "", "department or division in affiliations (comma-separated)")
	searchCmd.Flags().String("keywords", "", "keywords searched in title and abstract (comma-separated)")
	searchCmd.Flags().Bool("has-abstract", false, "only articles with an abstract")
	searchCmd.Flags().Bool("open-access", false, "only free full text articles")
	searchCmd.Flags().Bool("full-text", false, "only articles with any full text")
	searchCmd.Flags().StringSlice("article-type", nil, fmt.Sprintf("article types %v", search.ArticleTypes()))
	searchCmd.Flags().Bool("src-med", true, "include PubMed/MEDLINE (SRC:MED)")
	searchCmd.Flags().Bool("src-pmc", false, "include PubMed Central (SRC:PMC)")
	searchCmd.Flags().Bool("src-ppr", false, "include preprints (SRC:PPR)")
	searchCmd.Flags().Bool("exclude-preprints", true, "exclude preprints (NOT SRC:PPR)")

	searchCmd.Flags().Int("max-rows", search.DefaultMaxRows, "maximum records to fetch")
	searchCmd.Flags().Bool("synonym", false, "expand MeSH synonyms")
	searchCmd.Flags().Bool("relax-if-zero", true, "retry an empty search with relaxed filters")
	searchCmd.Flags().Bool("long-vowel", true, "collapse over-generated long vowels in katakana")
	searchCmd.Flags().Bool("surname-long-o", true, "elongate trailing to/do of known surnames")
	searchCmd.Flags().StringSlice("overrides", nil, "extra override dictionary files (YAML)")
	searchCmd.Flags().Int("workers", 8, "concurrent transliteration workers")

	searchCmd.Flags().String("format", "table", "output format: table, json, or csv")
	searchCmd.Flags().Int("limit", 50, "rows shown in table output (0 = all)")
	searchCmd.Flags().String("rows-csv", "", "write author rows CSV to this path")
	searchCmd.Flags().String("scores-csv", "", "write author scores CSV to this path")
	searchCmd.Flags().String("encoding", string(types.EncodingUTF8BOM), "CSV encoding: utf-8-sig, utf-8, or shift_jis")
	searchCmd.Flags().String("save", "", "save the search and its articles to a YAML file")
	searchCmd.Flags().String("from-file", "", "re-score a saved search instead of querying the API")
	searchCmd.Flags().Bool("no-store", false, "do not read confirmations or record history")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd, searchBindings...)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" && format != "csv" {
		return fmt.Errorf("unsupported format %q: use table, json, or csv", format)
	}

	filters, out, live, err := searchOutcome(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("save"); path != "" && live {
		if err := search.WriteSearchFile(path, search.NewSearchFile(filters, cfg.Search, out)); err != nil {
			return err
		}
		log.Info("saved search", zap.String("path", path))
	}

	rows := authors.FilterYears(authors.Explode(out.Articles), filters.YearFrom, filters.YearTo)

	noStore, _ := cmd.Flags().GetBool("no-store")
	confirmed, err := scoreContext(ctx, cfg, noStore, live, out)
	if err != nil {
		return err
	}

	eng, err := kana.LoadEngine(cfg.Kana.OverridesFiles...)
	if err != nil {
		return err
	}
	scores, err := authors.Aggregate(ctx, rows, eng, authors.Options{
		Kana:    kana.Options{LongVowel: cfg.Kana.LongVowel, SurnameLongO: cfg.Kana.SurnameLongO},
		Workers: cfg.Kana.Workers,
	}, confirmed)
	if err != nil {
		return err
	}

	enc := cfg.Export.Encoding
	if err := writeCSVFile(cfg.Export.RowsFile, "author rows", func(w io.Writer) error {
		return export.WriteAuthorRowsCSV(w, rows, enc)
	}); err != nil {
		return err
	}
	if err := writeCSVFile(cfg.Export.ScoresFile, "author scores", func(w io.Writer) error {
		return export.WriteAuthorScoresCSV(w, scores, enc)
	}); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	switch format {
	case "json":
		return export.FormatJSON(stdout, scores)
	case "csv":
		return export.WriteAuthorScoresCSV(stdout, scores, enc)
	default:
		limit, _ := cmd.Flags().GetInt("limit")
		return export.FormatScoresTable(stdout, scores, limit)
	}
}

// searchOutcome runs the search described by the flags, or loads it from
// --from-file. live reports whether the API was queried.
func searchOutcome(ctx context.Context, cmd *cobra.Command, cfg types.Config) (search.Filters, search.Outcome, bool, error) {
	if path, _ := cmd.Flags().GetString("from-file"); path != "" {
		sf, err := search.ReadSearchFile(path)
		if err != nil {
			return search.Filters{}, search.Outcome{}, false, err
		}
		out := sf.Outcome()
		log.Info("loaded saved search",
			zap.String("path", path),
			zap.String("query", out.Query),
			zap.Time("searched_at", sf.Summary.Timestamp),
			zap.Int("fetched", len(out.Articles)),
			zap.Int("unique_articles", out.UniqueArticles()),
		)
		return sf.Filters, out, false, nil
	}

	filters := filtersFromFlags(cmd)
	sc := cfg.Search
	sc.UserAgent = loadedSecrets.UserAgent(sc.UserAgent)
	client := search.NewClient(nil, sc, log)

	out, err := search.Run(ctx, client, filters, sc.RelaxIfZero, log)
	if err != nil {
		return filters, search.Outcome{}, false, err
	}
	return filters, out, true, nil
}

// scoreContext loads confirmed katakana and records a live search in the
// history. Both are skipped with --no-store.
func scoreContext(ctx context.Context, cfg types.Config, noStore, live bool, out search.Outcome) (map[string]kana.Name, error) {
	if noStore {
		return nil, nil
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if live {
		if _, err := st.RecordSearch(ctx, types.SearchRecord{
			Query:          out.Query,
			HitCount:       out.HitCount,
			MedlineHits:    out.MedlineHits,
			Fetched:        len(out.Articles),
			UniqueArticles: out.UniqueArticles(),
			Relaxed:        out.Relaxed,
		}); err != nil {
			log.Warn("could not record search history", zap.Error(err))
		}
	}
	return st.ConfirmedNames(ctx)
}

func filtersFromFlags(cmd *cobra.Command) search.Filters {
	flags := cmd.Flags()
	from, _ := flags.GetInt("from")
	to, _ := flags.GetInt("to")

	f := search.DefaultFilters(from, to)
	f.Disease, _ = flags.GetString("disease")
	f.Country, _ = flags.GetString("country")
	f.Department, _ = flags.GetString("department")
	f.Keywords, _ = flags.GetString("keywords")
	f.HasAbstract, _ = flags.GetBool("has-abstract")
	f.OpenAccess, _ = flags.GetBool("open-access")
	f.HasFullText, _ = flags.GetBool("full-text")
	f.ArticleTypes, _ = flags.GetStringSlice("article-type")
	f.SourceMED, _ = flags.GetBool("src-med")
	f.SourcePMC, _ = flags.GetBool("src-pmc")
	f.SourcePPR, _ = flags.GetBool("src-ppr")
	f.ExcludePreprints, _ = flags.GetBool("exclude-preprints")
	return f
}
