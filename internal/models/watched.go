package models

// FindWatched returns the entry for imdbID, if any.
func FindWatched(list []WatchedMovie, imdbID string) (WatchedMovie, bool) {
	for _, m := range list {
		if m.ImdbID == imdbID {
			return m, true
		}
	}
	return WatchedMovie{}, false
}

// AddWatched returns list with movie appended, or list itself when the imdbID is already present.
func AddWatched(list []WatchedMovie, movie WatchedMovie) []WatchedMovie {
	if _, ok := FindWatched(list, movie.ImdbID); ok {
		return list
	}
	next := make([]WatchedMovie, 0, len(list)+1)
	next = append(next, list...)
	return append(next, movie)
}

// RemoveWatched returns a copy of list without imdbID.
func RemoveWatched(list []WatchedMovie, imdbID string) []WatchedMovie {
	next := make([]WatchedMovie, 0, len(list))
	for _, m := range list {
		if m.ImdbID != imdbID {
			next = append(next, m)
		}
	}
	return next
}
