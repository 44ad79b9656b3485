// Package tasks implements the request lifecycles behind the movie tracker: title search and detail lookup.
//
// # Lifecycle
//
// Each fetcher owns at most one active request. A request is a cancellation token: a [context.Context]
// derived from the caller's context plus a request id from [shared.GenerateID].
//
//  1. Begin ([SearchFetcher.SetQuery], [DetailFetcher.Select]) cancels the previous token,
//     marks the state as loading and returns a request.
//  2. Fetch performs the blocking catalog call. It touches no state and runs in any goroutine,
//     typically inside a bubbletea command.
//  3. Apply commits a result only if its id is still the active one.
//     Results of superseded requests are dropped, so a late response can never overwrite newer state.
//
// Cancellation is suppressed: a cancelled request never surfaces an error.
// Loading is cleared on every exit path of the active request.
//
// The split between Fetch and Apply keeps every state mutation on the caller's event loop while
// the network call runs elsewhere.
package tasks
