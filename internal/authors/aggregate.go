// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/litscorer/internal/kana"
	"github.com/pdiddy/litscorer/internal/logger"
	"github.com/pdiddy/litscorer/pkg/types"
)

const defaultWorkers = 8

// Options controls aggregation.
type Options struct {
	Kana kana.Options

	// Workers bounds concurrent transliteration (default 8).
	Workers int
}

type groupKey struct {
	author string
	aff    string
}

// Aggregate sums row scores per (author, main affiliation) and attaches the
// katakana name of each author. Each distinct author is transliterated
// once, concurrently, from the first and last name of the first row seen
// for that author. Names in confirmed replace the engine output and mark
// the score as confirmed. Rows without any author name are skipped.
//
// The result is sorted by score (descending), then author and affiliation.
func Aggregate(ctx context.Context, rows []types.AuthorRow, eng *kana.Engine, opts Options, confirmed map[string]kana.Name) ([]types.AuthorScore, error) {
	rows = lo.Filter(rows, func(r types.AuthorRow, _ int) bool { return r.Author() != "" })
	if len(rows) == 0 {
		return nil, nil
	}
	if eng == nil {
		eng = kana.Default()
	}

	groups := lo.GroupBy(rows, func(r types.AuthorRow) groupKey {
		return groupKey{author: r.Author(), aff: r.MainAffiliation}
	})

	names := lo.Uniq(lo.Map(rows, func(r types.AuthorRow, _ int) string { return r.Author() }))
	rep := make(map[string]types.AuthorRow, len(names))
	for _, r := range rows {
		if _, ok := rep[r.Author()]; !ok {
			rep[r.Author()] = r
		}
	}

	kanaNames, err := transliterateAll(ctx, names, rep, eng, opts)
	if err != nil {
		return nil, err
	}

	scores := make([]types.AuthorScore, 0, len(groups))
	for key, members := range groups {
		name, ok := confirmed[key.author]
		if !ok {
			name = kanaNames[key.author]
		}
		scores = append(scores, types.AuthorScore{
			Author:          key.author,
			MainAffiliation: key.aff,
			KanaName:        name.Full,
			KanaLastName:    name.Family,
			KanaFirstName:   name.Given,
			Score:           lo.SumBy(members, func(r types.AuthorRow) int { return r.Score }),
			Articles:        len(lo.UniqBy(members, func(r types.AuthorRow) string { return r.PMID })),
			ConfirmKana:     ok,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Author != b.Author {
			return a.Author < b.Author
		}
		return a.MainAffiliation < b.MainAffiliation
	})
	logger.FromContext(ctx).Debug("aggregated authors",
		zap.Int("rows", len(rows)),
		zap.Int("authors", len(names)),
		zap.Int("groups", len(scores)),
		zap.Int("confirmed", lo.CountBy(scores, func(s types.AuthorScore) bool { return s.ConfirmKana })),
	)
	return scores, nil
}

// transliterateAll converts every distinct author name with a bounded
// worker pool. Each worker writes only its own slot.
func transliterateAll(ctx context.Context, names []string, rep map[string]types.AuthorRow, eng *kana.Engine, opts Options) (map[string]kana.Name, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	out := make([]kana.Name, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, author := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			first, last := nameParts(author, rep[author])
			out[i] = eng.Transliterate(last, first, opts.Kana)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byAuthor := make(map[string]kana.Name, len(names))
	for i, author := range names {
		byAuthor[author] = out[i]
	}
	return byAuthor, nil
}

// nameParts returns the given and family name for an author. When the row
// carries neither, the display name is split on whitespace: the first word
// is the given name and the last word, if there are two or more, the
// family name.
func nameParts(author string, r types.AuthorRow) (first, last string) {
	if r.FirstName != "" || r.LastName != "" {
		return r.FirstName, r.LastName
	}
	parts := strings.Fields(author)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	if len(parts) >= 2 {
		last = parts[len(parts)-1]
	}
	return first, last
}
