package tasks

import (
	"context"

	"github.com/desertthunder/popcorn/internal/shared"
)

// token is the cancellation handle of a single request.
type token struct {
	id     string
	cancel context.CancelFunc
}

// inflight tracks the active request of a fetcher. Callers hold the fetcher's lock.
type inflight struct {
	current *token
}

// begin cancels the active request and starts a new one derived from parent.
func (f *inflight) begin(parent context.Context) (context.Context, string) {
	f.stop()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	f.current = &token{id: shared.GenerateID(), cancel: cancel}
	return ctx, f.current.id
}

// stop cancels the active request, if any.
func (f *inflight) stop() {
	if f.current != nil {
		f.current.cancel()
		f.current = nil
	}
}

// finish releases the token for id and reports whether id was the active request.
func (f *inflight) finish(id string) bool {
	if f.current == nil || f.current.id != id {
		return false
	}
	f.current.cancel()
	f.current = nil
	return true
}
