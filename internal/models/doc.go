// Package models defines the domain entities of the movie tracker.
//
// The package contains two categories of types:
//
// 1. Catalog data: values decoded from the OMDb API
//   - [Movie] : search result summary, replaced wholesale on every search
//   - [MovieDetail] : full record fetched by imdbID for the detail panel
//
// 2. Client state: values owned by the user
//   - [WatchedMovie] : a rated movie in the persisted watched list
//   - [SearchState] : query, loading flag, error and current results
//   - [Summary] : derived statistics over the watched list
//
// Numeric fields of [WatchedMovie] may hold NaN when the catalog reports "N/A".
// NaN values are encoded as JSON null and skipped by [Summarize].
package models
