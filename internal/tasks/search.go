package tasks

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/services"
	"github.com/desertthunder/popcorn/internal/shared"
)

// DefaultMinQueryLength is the shortest trimmed query that reaches the catalog.
const DefaultMinQueryLength = 3

// SearchOpts configures a [SearchFetcher].
type SearchOpts struct {
	MinQueryLength int         // Defaults to DefaultMinQueryLength
	OnSearch       func()      // Invoked once per new search, before the request is returned
	Logger         *log.Logger // Defaults to a stderr logger
}

// SearchRequest is a started search.
type SearchRequest struct {
	ID    string
	Query string
	ctx   context.Context
}

// Context returns the request's cancellation context.
func (r *SearchRequest) Context() context.Context {
	return r.ctx
}

// SearchResult is the outcome of [SearchFetcher.Fetch].
type SearchResult struct {
	ID      string
	Query   string
	Results []models.Movie
	Err     error
}

// SearchFetcher runs title searches with at most one active request.
type SearchFetcher struct {
	catalog  services.Catalog
	minLen   int
	onSearch func()
	logger   *log.Logger

	mu       sync.Mutex
	inflight inflight
	state    models.SearchState
}

// NewSearchFetcher creates a new SearchFetcher over catalog.
func NewSearchFetcher(catalog services.Catalog, opts SearchOpts) *SearchFetcher {
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultMinQueryLength
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &SearchFetcher{
		catalog:  catalog,
		minLen:   opts.MinQueryLength,
		onSearch: opts.OnSearch,
		logger:   shared.WithLogger(opts.Logger, "component", "search"),
		state:    models.SearchState{Results: []models.Movie{}},
	}
}

// SetQuery records a query change and supersedes any in-flight search.
//
// Short queries clear results and error and return nil without touching the network.
// Otherwise loading is set, the error cleared, OnSearch invoked and the new request returned.
func (f *SearchFetcher) SetQuery(ctx context.Context, query string) *SearchRequest {
	trimmed := strings.TrimSpace(query)

	f.mu.Lock()
	f.state.Query = query

	if utf8.RuneCountInString(trimmed) < f.minLen {
		f.inflight.stop()
		f.state.Loading = false
		f.state.Err = nil
		f.state.Results = []models.Movie{}
		f.mu.Unlock()
		return nil
	}

	reqCtx, id := f.inflight.begin(ctx)
	f.state.Loading = true
	f.state.Err = nil
	onSearch := f.onSearch
	f.mu.Unlock()

	f.logger.Debug("search started", "query", trimmed, "request", id)
	if onSearch != nil {
		onSearch()
	}

	return &SearchRequest{ID: id, Query: trimmed, ctx: reqCtx}
}

// Fetch performs the catalog call for req. It does not modify fetcher state.
func (f *SearchFetcher) Fetch(req *SearchRequest) SearchResult {
	movies, err := f.catalog.Search(req.ctx, req.Query)
	if err != nil && !shared.IsCanceled(err) {
		f.logger.Warn("search failed", "query", req.Query, "request", req.ID, "error", err)
	}
	return SearchResult{ID: req.ID, Query: req.Query, Results: movies, Err: err}
}

// Apply commits res when it belongs to the active request and reports whether it did.
func (f *SearchFetcher) Apply(res SearchResult) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.inflight.finish(res.ID) {
		f.logger.Debug("discarding stale search result", "query", res.Query, "request", res.ID)
		return false
	}

	f.state.Loading = false
	switch {
	case res.Err == nil:
		f.state.Err = nil
		f.state.Results = res.Results
		if f.state.Results == nil {
			f.state.Results = []models.Movie{}
		}
	case shared.IsCanceled(res.Err):
		// never user visible
	default:
		f.state.Err = res.Err
		f.state.Results = []models.Movie{}
	}

	return true
}

// Search runs a full query change synchronously and returns the resulting state.
func (f *SearchFetcher) Search(ctx context.Context, query string) models.SearchState {
	if req := f.SetQuery(ctx, query); req != nil {
		f.Apply(f.Fetch(req))
	}
	return f.State()
}

// State returns a snapshot of the search state.
func (f *SearchFetcher) State() models.SearchState {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.state
	s.Results = append([]models.Movie(nil), f.state.Results...)
	return s
}

// Close cancels the in-flight search. Its result, if it still arrives, is discarded.
func (f *SearchFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight.stop()
	f.state.Loading = false
}
