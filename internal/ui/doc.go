// Package ui implements the interactive movie tracker using bubbletea's Elm architecture.
//
// The screen is split in two panes:
//  1. Left: the search box, the result count and the result list (or the fetch error)
//  2. Right: either the [session.DetailPanel] of the selected movie with its star rating,
//     or the [session.SummaryPanel] with the watched summary and the watched list
//
// Typing in the search box drives a [tasks.SearchFetcher]; every query change supersedes the previous request.
// Fetches run inside [tea.Cmd] goroutines and report back as [Msg] values; results of superseded requests are dropped.
//
// Keyboard: tab cycles focus (search, results, watched), enter selects, 1-9 and 0 rate, a adds, d deletes,
// o opens the IMDb page, esc closes the detail, q (outside the search box) or ctrl+c quits.
package ui
