// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/litscorer/internal/httputil"
	"github.com/pdiddy/litscorer/pkg/types"
)

// europePMCSearchURL is the Europe PMC REST search endpoint. Declared as a
// var so tests can substitute an httptest server.
var europePMCSearchURL = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// Fetch defaults. Europe PMC serves at most 1000 records per page.
const (
	MaxPageSize      = 1000
	DefaultMaxRows   = 5000
	DefaultPageDelay = 200 * time.Millisecond
)

// Client queries the Europe PMC REST API. No API key is required.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig
	Log  *zap.Logger
}

// NewClient returns a client with defaults applied to cfg. A zero
// PageDelay disables the pause between pages.
func NewClient(httpClient *http.Client, cfg types.SearchConfig, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultMaxRows
	}
	if cfg.PageSize <= 0 || cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	if cfg.PageDelay < 0 {
		cfg.PageDelay = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{HTTP: httpClient, Cfg: cfg, Log: log}
}

// Result holds the fetched articles and the API's total hit count, which
// may exceed len(Articles) when MaxRows truncates the fetch.
type Result struct {
	Articles []types.Article
	HitCount int
}

// FetchAll pages through the results of query with cursor marks until
// MaxRows records are fetched, a page comes back empty or short, or the
// API stops returning a new cursor. It returns at most MaxRows articles.
func (c *Client) FetchAll(ctx context.Context, query string) (Result, error) {
	maxRows := c.Cfg.MaxRows
	pageSize := min(c.Cfg.PageSize, maxRows)

	var out Result
	cursor := "*"
	for len(out.Articles) < maxRows {
		page, err := c.fetchPage(ctx, query, cursor, pageSize)
		if err != nil {
			return Result{}, err
		}
		if out.HitCount == 0 {
			out.HitCount = page.HitCount
		}

		items := page.ResultList.Result
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			out.Articles = append(out.Articles, item.toArticle())
		}

		c.Log.Debug("fetched page",
			zap.Int("page_items", len(items)),
			zap.Int("fetched", len(out.Articles)),
			zap.Int("hit_count", out.HitCount),
		)

		next := page.NextCursorMark
		if next == "" || next == cursor || len(items) < pageSize {
			break
		}
		cursor = next

		if c.Cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(c.Cfg.PageDelay):
			}
		}
	}

	if len(out.Articles) > maxRows {
		out.Articles = out.Articles[:maxRows]
	}
	return out, nil
}

// HitCount returns the total number of records matching query.
func (c *Client) HitCount(ctx context.Context, query string) (int, error) {
	page, err := c.fetchPage(ctx, query, "", 1)
	if err != nil {
		return 0, err
	}
	return page.HitCount, nil
}

func (c *Client) fetchPage(ctx context.Context, query, cursor string, pageSize int) (*epmcResponse, error) {
	params := url.Values{
		"query":      {query},
		"format":     {"json"},
		"resultType": {"core"},
		"pageSize":   {strconv.Itoa(pageSize)},
		"synonym":    {strconv.FormatBool(c.Cfg.Synonym)},
	}
	if cursor != "" {
		params.Set("cursorMark", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, europePMCSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.Cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Cfg.MaxRetries, c.Log)
	if err != nil {
		return nil, fmt.Errorf("Europe PMC API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Europe PMC API returned HTTP %d", resp.StatusCode)
	}

	var page epmcResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing Europe PMC response: %w", err)
	}
	return &page, nil
}

// Europe PMC API JSON structures (resultType=core).
type epmcResponse struct {
	HitCount       int    `json:"hitCount"`
	NextCursorMark string `json:"nextCursorMark"`
	ResultList     struct {
		Result []epmcResult `json:"result"`
	} `json:"resultList"`
}

type epmcResult struct {
	ID                   string `json:"id"`
	Source               string `json:"source"`
	PMID                 string `json:"pmid"`
	Title                string `json:"title"`
	JournalTitle         string `json:"journalTitle"`
	PubYear              string `json:"pubYear"`
	FirstPublicationDate string `json:"firstPublicationDate"`
	JournalInfo          struct {
		Journal struct {
			Title string `json:"title"`
		} `json:"journal"`
	} `json:"journalInfo"`
	AuthorList struct {
		Author []epmcAuthor `json:"author"`
	} `json:"authorList"`
}

type epmcAuthor struct {
	FullName    string      `json:"fullName"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Affiliation flexStrings `json:"affiliation"`
	Details     struct {
		Affiliations []struct {
			Affiliation string `json:"affiliation"`
		} `json:"authorAffiliation"`
	} `json:"authorAffiliationDetailsList"`
}

// flexStrings accepts a JSON string, an array of strings, or null.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexStrings{s}
	return nil
}

func (r epmcResult) toArticle() types.Article {
	a := types.Article{
		ID:                   r.ID,
		PMID:                 r.PMID,
		Source:               r.Source,
		Title:                r.Title,
		Journal:              r.JournalTitle,
		PubYear:              r.PubYear,
		FirstPublicationDate: r.FirstPublicationDate,
	}
	if a.Journal == "" {
		a.Journal = r.JournalInfo.Journal.Title
	}
	for _, au := range r.AuthorList.Author {
		a.Authors = append(a.Authors, au.toAuthor())
	}
	return a
}

func (au epmcAuthor) toAuthor() types.ArticleAuthor {
	var affs []string
	for _, s := range au.Affiliation {
		if s = strings.TrimSpace(s); s != "" {
			affs = append(affs, s)
		}
	}
	if len(affs) == 0 {
		for _, d := range au.Details.Affiliations {
			if s := strings.TrimSpace(d.Affiliation); s != "" {
				affs = append(affs, s)
			}
		}
	}
	return types.ArticleAuthor{
		FullName:     au.FullName,
		FirstName:    au.FirstName,
		LastName:     au.LastName,
		Affiliations: affs,
	}
}
