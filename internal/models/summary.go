package models

import (
	"fmt"
	"math"
)

// Average returns the arithmetic mean of values, or 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Summary holds the derived statistics of a watched list.
type Summary struct {
	Count         int
	AvgImdbRating float64
	AvgUserRating float64
	AvgRuntime    float64
}

// Summarize computes a [Summary], skipping NaN fields and non-positive runtimes.
func Summarize(watched []WatchedMovie) Summary {
	var imdb, user, runtime []float64
	for _, m := range watched {
		if !math.IsNaN(m.ImdbRating) {
			imdb = append(imdb, m.ImdbRating)
		}
		if !math.IsNaN(m.UserRating) {
			user = append(user, m.UserRating)
		}
		if !math.IsNaN(m.Runtime) && m.Runtime > 0 {
			runtime = append(runtime, m.Runtime)
		}
	}

	return Summary{
		Count:         len(watched),
		AvgImdbRating: Average(imdb),
		AvgUserRating: Average(user),
		AvgRuntime:    Average(runtime),
	}
}

// CountLabel renders the number of watched movies.
func (s Summary) CountLabel() string {
	return fmt.Sprintf("%d movies", s.Count)
}

// ImdbLabel renders the mean IMDb rating to two decimals.
func (s Summary) ImdbLabel() string {
	return fmt.Sprintf("%.2f", s.AvgImdbRating)
}

// UserLabel renders the mean user rating to two decimals.
func (s Summary) UserLabel() string {
	return fmt.Sprintf("%.2f", s.AvgUserRating)
}

// RuntimeLabel renders the mean runtime rounded to whole minutes.
func (s Summary) RuntimeLabel() string {
	return fmt.Sprintf("%d min", int64(math.Round(s.AvgRuntime)))
}
