package shared

import (
	"context"
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrAPIKeyMissing = fmt.Errorf("catalog API key is not configured")

	// Catalog errors
	ErrNetwork            = fmt.Errorf("something went wrong with fetching movies")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// IsCanceled reports whether err came from a cancelled or superseded request.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// UserMessage converts a fetch error into the single string shown in place of the result list.
//
// Cancellation yields the empty string: it is never user visible.
func UserMessage(err error) string {
	switch {
	case err == nil, IsCanceled(err):
		return ""
	case errors.Is(err, ErrMovieNotFound):
		return "Movie not found"
	case errors.Is(err, ErrNetwork):
		return "Something went wrong with fetching movies"
	default:
		return err.Error()
	}
}
