// Package services defines the [Catalog] interface for movie metadata providers and implements it for OMDb.
//
// # OMDb Implementation
//
// [OMDbService] issues GET requests against a single endpoint, selecting the operation by query parameter:
//
//	GET {base_url}?apikey={key}&s={query}   search by title
//	GET {base_url}?apikey={key}&i={imdbID}  details by id
//
// Every payload carries Response "True" or "False"; "False" is reported with an Error string.
//
// Outbound requests pass through a [rate.Limiter].
// Limiter waits and HTTP calls both honour the request context, so a superseded search returns promptly.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIKeyMissing] : no API key configured
//   - [shared.ErrNetwork] : transport failure or non-2xx status
//   - [shared.ErrMovieNotFound] : the catalog reported no match
//
// Cancellation is returned wrapping [context.Canceled] so callers can suppress it.
package services
