// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search builds Europe PMC queries from user filters, fetches the
// matching articles, and saves searches to disk for later re-scoring.
package search

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/pdiddy/litscorer/pkg/types"
)

// Fetcher retrieves articles for a query string. *Client implements it;
// tests substitute a fake.
type Fetcher interface {
	FetchAll(ctx context.Context, query string) (Result, error)
	HitCount(ctx context.Context, query string) (int, error)
}

// Outcome is the result of one search run.
type Outcome struct {
	// Query is the query that produced Articles (the relaxed one when Relaxed).
	Query    string
	Relaxed  bool
	Articles []types.Article
	HitCount int

	// MedlineHits is the hit count restricted to MEDLINE, or -1 when that
	// secondary request failed.
	MedlineHits int
}

// UniqueArticles counts distinct articles by PMID, falling back to the source ID.
func (o Outcome) UniqueArticles() int {
	return len(lo.UniqBy(o.Articles, func(a types.Article) string { return a.Key() }))
}

// Run validates filters, fetches the matching articles, and, when relax is
// set and nothing matched, retries once with Filters.Relaxed. A failed
// MEDLINE hit count is logged and reported as -1, not returned as an error.
func Run(ctx context.Context, f Fetcher, filters Filters, relax bool, log *zap.Logger) (Outcome, error) {
	if err := filters.Validate(); err != nil {
		return Outcome{}, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	query := BuildQuery(filters)
	log.Info("searching Europe PMC", zap.String("query", query))

	res, err := f.FetchAll(ctx, query)
	if err != nil {
		return Outcome{}, fmt.Errorf("search: %w", err)
	}

	out := Outcome{Query: query, Articles: res.Articles, HitCount: res.HitCount}

	if len(res.Articles) == 0 && relax {
		relaxed := BuildQuery(filters.Relaxed())
		log.Warn("no results, retrying with relaxed filters", zap.String("query", relaxed))
		res, err = f.FetchAll(ctx, relaxed)
		if err != nil {
			return Outcome{}, fmt.Errorf("relaxed search: %w", err)
		}
		out = Outcome{Query: relaxed, Relaxed: true, Articles: res.Articles, HitCount: res.HitCount}
	}

	out.MedlineHits = -1
	if n, err := f.HitCount(ctx, MedlineOnly(out.Query)); err != nil {
		log.Warn("MEDLINE hit count failed", zap.Error(err))
	} else {
		out.MedlineHits = n
	}

	log.Info("search complete",
		zap.Int("hit_count", out.HitCount),
		zap.Int("medline_hits", out.MedlineHits),
		zap.Int("fetched", len(out.Articles)),
		zap.Int("unique_articles", out.UniqueArticles()),
		zap.Bool("relaxed", out.Relaxed),
	)
	return out, nil
}
