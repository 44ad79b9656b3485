package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/services"
	"github.com/desertthunder/popcorn/internal/shared"
)

// DetailState is the observable state of the detail panel.
type DetailState struct {
	ImdbID  string
	Loading bool
	Err     error
	Detail  *models.MovieDetail
}

// DetailRequest is a started detail lookup.
type DetailRequest struct {
	ID     string
	ImdbID string
	ctx    context.Context
}

// DetailResult is the outcome of [DetailFetcher.Fetch].
type DetailResult struct {
	ID     string
	ImdbID string
	Detail *models.MovieDetail
	Err    error
}

// DetailFetcher loads the detail record of the selected movie with at most one active request.
type DetailFetcher struct {
	catalog services.Catalog
	logger  *log.Logger

	mu       sync.Mutex
	inflight inflight
	state    DetailState
}

// NewDetailFetcher creates a new DetailFetcher over catalog.
func NewDetailFetcher(catalog services.Catalog, logger *log.Logger) *DetailFetcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &DetailFetcher{catalog: catalog, logger: shared.WithLogger(logger, "component", "detail")}
}

// Select supersedes any in-flight lookup and starts loading imdbID.
// An empty imdbID clears the panel and returns nil.
func (f *DetailFetcher) Select(ctx context.Context, imdbID string) *DetailRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if imdbID == "" {
		f.inflight.stop()
		f.state = DetailState{}
		return nil
	}

	reqCtx, id := f.inflight.begin(ctx)
	f.state = DetailState{ImdbID: imdbID, Loading: true}
	return &DetailRequest{ID: id, ImdbID: imdbID, ctx: reqCtx}
}

// Fetch performs the catalog call for req. It does not modify fetcher state.
func (f *DetailFetcher) Fetch(req *DetailRequest) DetailResult {
	detail, err := f.catalog.Details(req.ctx, req.ImdbID)
	if err != nil && !shared.IsCanceled(err) {
		f.logger.Warn("detail lookup failed", "imdbID", req.ImdbID, "error", err)
	}
	return DetailResult{ID: req.ID, ImdbID: req.ImdbID, Detail: detail, Err: err}
}

// Apply commits res when it belongs to the active request and reports whether it did.
func (f *DetailFetcher) Apply(res DetailResult) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.inflight.finish(res.ID) {
		f.logger.Debug("discarding stale detail result", "imdbID", res.ImdbID)
		return false
	}

	f.state.Loading = false
	switch {
	case res.Err == nil:
		f.state.Detail = res.Detail
	case shared.IsCanceled(res.Err):
	default:
		f.state.Err = res.Err
	}
	return true
}

// State returns a snapshot of the detail state.
func (f *DetailFetcher) State() DetailState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Close cancels the in-flight lookup and clears the panel.
func (f *DetailFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight.stop()
	f.state = DetailState{}
}
