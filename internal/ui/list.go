package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/popcorn/internal/models"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = watchedItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string { return "🗓 " + i.movie.Year }

// watchedItem wraps [models.WatchedMovie] to implement [list.Item].
type watchedItem struct {
	movie models.WatchedMovie
}

func (i watchedItem) FilterValue() string { return i.movie.Title }
func (i watchedItem) Title() string       { return i.movie.Title }
func (i watchedItem) Description() string {
	return fmt.Sprintf("⭐️ %s  🌟 %s  ⏳ %s min", number(i.movie.ImdbRating), number(i.movie.UserRating), number(i.movie.Runtime))
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%g", v)
}

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}

func watchedItems(watched []models.WatchedMovie) []list.Item {
	items := make([]list.Item, len(watched))
	for i, m := range watched {
		items[i] = watchedItem{movie: m}
	}
	return items
}

// newList builds a list without the built-in filter, help and quit bindings.
func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
