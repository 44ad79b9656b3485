// Package session holds the view state of the movie tracker as an explicit value.
//
// Every command returns a new [State]; nothing is mutated in place, so transitions are testable without rendering.
package session

import (
	"github.com/desertthunder/popcorn/internal/models"
)

// Panel identifies what the right-hand side of the screen shows.
type Panel int

const (
	SummaryPanel Panel = iota
	DetailPanel
)

func (p Panel) String() string {
	switch p {
	case SummaryPanel:
		return "summary"
	case DetailPanel:
		return "detail"
	default:
		return ""
	}
}

// MaxRating is the top of the user rating scale.
const MaxRating = 10

// State is the session state owned by the top-level view.
type State struct {
	Search   models.SearchState
	Selected string // imdbID shown in the detail panel, empty for the summary
	Rating   int    // rating being entered in the detail panel, 0 when unset
	Watched  []models.WatchedMovie
}

// New returns the initial state over a loaded watched list.
func New(watched []models.WatchedMovie) State {
	if watched == nil {
		watched = []models.WatchedMovie{}
	}
	return State{Watched: watched}
}

// Panel derives the right-hand panel from the selection.
func (s State) Panel() Panel {
	if s.Selected == "" {
		return SummaryPanel
	}
	return DetailPanel
}

// Select shows the detail of imdbID, or returns to the summary when it is already selected.
func (s State) Select(imdbID string) State {
	if imdbID == s.Selected {
		return s.Close()
	}
	s.Selected = imdbID
	s.Rating = 0
	return s
}

// Close returns to the summary.
func (s State) Close() State {
	s.Selected = ""
	s.Rating = 0
	return s
}

// Rate sets the pending user rating. Values outside 1..MaxRating are ignored.
func (s State) Rate(n int) State {
	if n < 1 || n > MaxRating {
		return s
	}
	s.Rating = n
	return s
}

// AddWatched inserts movie unless its imdbID is already present, and returns to the summary.
func (s State) AddWatched(movie models.WatchedMovie) State {
	s.Watched = models.AddWatched(s.Watched, movie)
	return s.Close()
}

// DeleteWatched removes imdbID from the watched list.
func (s State) DeleteWatched(imdbID string) State {
	s.Watched = models.RemoveWatched(s.Watched, imdbID)
	return s
}

// WithSearch replaces the search state.
func (s State) WithSearch(search models.SearchState) State {
	s.Search = search
	return s
}

// WatchedRating returns the stored user rating of imdbID, if it is watched.
func (s State) WatchedRating(imdbID string) (float64, bool) {
	m, ok := models.FindWatched(s.Watched, imdbID)
	if !ok {
		return 0, false
	}
	return m.UserRating, true
}

// CanAdd reports whether the detail panel offers "add to list": a rating is chosen and the movie is not watched yet.
func (s State) CanAdd() bool {
	if s.Selected == "" || s.Rating == 0 {
		return false
	}
	_, watched := s.WatchedRating(s.Selected)
	return !watched
}

// Summary derives the watched summary.
func (s State) Summary() models.Summary {
	return models.Summarize(s.Watched)
}
