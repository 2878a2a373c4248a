// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/litscorer/pkg/types"
)

// --- fake fetcher ---

type fakeFetcher struct {
	results  map[string]Result
	fetchErr error
	hitErr   error
	queries  []string
}

func (f *fakeFetcher) FetchAll(_ context.Context, query string) (Result, error) {
	f.queries = append(f.queries, query)
	if f.fetchErr != nil {
		return Result{}, f.fetchErr
	}
	return f.results[query], nil
}

func (f *fakeFetcher) HitCount(_ context.Context, query string) (int, error) {
	if f.hitErr != nil {
		return 0, f.hitErr
	}
	return 7, nil
}

func articles(keys ...string) []types.Article {
	var out []types.Article
	for _, k := range keys {
		out = append(out, types.Article{ID: k, PMID: k})
	}
	return out
}

func testFilters() Filters {
	f := DefaultFilters(2020, 2025)
	f.Disease = "asthma"
	f.Keywords = "steroid"
	return f
}

func TestRun(t *testing.T) {
	filters := testFilters()
	ff := &fakeFetcher{results: map[string]Result{
		BuildQuery(filters): {Articles: articles("1", "2", "2"), HitCount: 3},
	}}

	out, err := Run(context.Background(), ff, filters, true, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, out.Relaxed)
	assert.Equal(t, BuildQuery(filters), out.Query)
	assert.Len(t, out.Articles, 3)
	assert.Equal(t, 2, out.UniqueArticles())
	assert.Equal(t, 7, out.MedlineHits)
	assert.Len(t, ff.queries, 1)
}

func TestRunRelaxesEmptySearch(t *testing.T) {
	filters := testFilters()
	relaxed := BuildQuery(filters.Relaxed())
	ff := &fakeFetcher{results: map[string]Result{
		relaxed: {Articles: articles("9"), HitCount: 1},
	}}

	out, err := Run(context.Background(), ff, filters, true, nil)
	require.NoError(t, err)

	assert.True(t, out.Relaxed)
	assert.Equal(t, relaxed, out.Query)
	assert.Len(t, out.Articles, 1)
	assert.Equal(t, []string{BuildQuery(filters), relaxed}, ff.queries)
}

func TestRunWithoutRelax(t *testing.T) {
	ff := &fakeFetcher{results: map[string]Result{}}

	out, err := Run(context.Background(), ff, testFilters(), false, nil)
	require.NoError(t, err)
	assert.False(t, out.Relaxed)
	assert.Empty(t, out.Articles)
	assert.Len(t, ff.queries, 1)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), &fakeFetcher{}, Filters{YearFrom: 2020, YearTo: 2021}, true, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of")

	_, err = Run(context.Background(), &fakeFetcher{fetchErr: errors.New("boom")}, testFilters(), true, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunMedlineHitFailureIsNotFatal(t *testing.T) {
	filters := testFilters()
	ff := &fakeFetcher{
		results: map[string]Result{BuildQuery(filters): {Articles: articles("1"), HitCount: 1}},
		hitErr:  errors.New("unavailable"),
	}

	out, err := Run(context.Background(), ff, filters, true, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, out.MedlineHits)
}

func TestSearchFileRoundTrip(t *testing.T) {
	filters := testFilters()
	out := Outcome{
		Query:       BuildQuery(filters),
		Articles:    articles("1", "2"),
		HitCount:    10,
		MedlineHits: 8,
	}
	out.Articles[0].Authors = []types.ArticleAuthor{{FirstName: "Taro", LastName: "Tanaka", Affiliations: []string{"Osaka University"}}}
	out.Articles[1].Authors = []types.ArticleAuthor{{FullName: "Suzuki K"}}

	path := filepath.Join(t.TempDir(), "search.yaml")
	sf := NewSearchFile(filters, types.SearchConfig{MaxRows: 500}, out)
	require.NoError(t, WriteSearchFile(path, sf))

	got, err := ReadSearchFile(path)
	require.NoError(t, err)

	assert.Equal(t, filters, got.Filters)
	assert.Equal(t, 500, got.Config.MaxRows)
	assert.Equal(t, 2, got.Summary.Fetched)
	assert.Equal(t, 2, got.Summary.UniqueArticles)
	assert.Equal(t, out.Articles, got.Articles)
	assert.Equal(t, out.Query, got.Outcome().Query)
	assert.Equal(t, 8, got.Outcome().MedlineHits)
}

func TestReadSearchFileErrors(t *testing.T) {
	_, err := ReadSearchFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading search file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filters: [unclosed"), 0o644))
	_, err = ReadSearchFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing search file")
}
