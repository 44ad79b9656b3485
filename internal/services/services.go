// package services defines interface Catalog for querying movie metadata over HTTP
//
// OMDb
package services

import (
	"context"

	"github.com/desertthunder/popcorn/internal/models"
)

// Catalog defines the interface for movie metadata providers.
type Catalog interface {
	// Search returns the movies whose title matches query.
	// Returns [shared.ErrMovieNotFound] when the provider reports no match.
	Search(ctx context.Context, query string) ([]models.Movie, error)

	// Details retrieves the full record of a single title by imdbID.
	Details(ctx context.Context, imdbID string) (*models.MovieDetail, error)

	// Name returns the name of the provider (e.g., "OMDb")
	Name() string
}
