package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Movie is a search result summary.
type Movie struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
}

// MovieDetail is the full catalog record for a single title.
type MovieDetail struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"` // e.g. "148 min"
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

// RuntimeMinutes returns the leading number of Runtime, or NaN when it is not numeric.
func (d MovieDetail) RuntimeMinutes() float64 {
	head, _, _ := strings.Cut(strings.TrimSpace(d.Runtime), " ")
	return parseNumber(head)
}

// Rating returns the parsed IMDb rating, or NaN for "N/A".
func (d MovieDetail) Rating() float64 {
	return parseNumber(d.ImdbRating)
}

// ToWatched converts the detail into a [WatchedMovie] carrying the user's rating.
func (d MovieDetail) ToWatched(userRating float64) WatchedMovie {
	return WatchedMovie{
		ImdbID:     d.ImdbID,
		Title:      d.Title,
		Year:       d.Year,
		Poster:     d.Poster,
		Runtime:    d.RuntimeMinutes(),
		ImdbRating: d.Rating(),
		UserRating: userRating,
	}
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// WatchedMovie is an entry of the watched list, keyed by ImdbID.
type WatchedMovie struct {
	ImdbID     string
	Title      string
	Year       string
	Poster     string
	Runtime    float64 // minutes
	ImdbRating float64
	UserRating float64
}

type watchedJSON struct {
	ImdbID     string   `json:"imdbID"`
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Poster     string   `json:"poster"`
	Runtime    *float64 `json:"runtime"`
	ImdbRating *float64 `json:"imdbRating"`
	UserRating *float64 `json:"userRating"`
}

// MarshalJSON encodes NaN numbers as null.
func (w WatchedMovie) MarshalJSON() ([]byte, error) {
	return json.Marshal(watchedJSON{
		ImdbID:     w.ImdbID,
		Title:      w.Title,
		Year:       w.Year,
		Poster:     w.Poster,
		Runtime:    finite(w.Runtime),
		ImdbRating: finite(w.ImdbRating),
		UserRating: finite(w.UserRating),
	})
}

// UnmarshalJSON decodes null or missing numbers as NaN.
func (w *WatchedMovie) UnmarshalJSON(data []byte) error {
	var raw watchedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = WatchedMovie{
		ImdbID:     raw.ImdbID,
		Title:      raw.Title,
		Year:       raw.Year,
		Poster:     raw.Poster,
		Runtime:    orNaN(raw.Runtime),
		ImdbRating: orNaN(raw.ImdbRating),
		UserRating: orNaN(raw.UserRating),
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// SearchState is the observable state of a search: at most one of Err and Results is meaningful.
type SearchState struct {
	Query   string
	Loading bool
	Err     error
	Results []Movie
}

// CountLabel is the result counter shown next to the search box.
func (s SearchState) CountLabel() string {
	return fmt.Sprintf("Found %d results", len(s.Results))
}
