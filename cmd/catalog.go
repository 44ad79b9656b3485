package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/popcorn/internal/shared"
	"github.com/desertthunder/popcorn/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search runs one title search and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	minLen := r.config.Catalog.MinQueryLength
	if minLen <= 0 {
		minLen = tasks.DefaultMinQueryLength
	}
	if utf8.RuneCountInString(query) < minLen {
		return fmt.Errorf("%w: query must be at least %d characters", shared.ErrInvalidArgument, minLen)
	}

	fetcher := tasks.NewSearchFetcher(r.Catalog(), tasks.SearchOpts{MinQueryLength: minLen, Logger: r.logger})
	defer fetcher.Close()

	r.logger.Info("searching catalog", "query", query)
	state := fetcher.Search(ctx, query)
	if state.Err != nil {
		return state.Err
	}

	if cmd.Bool("json") {
		return r.writeJSON(state.Results, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n\n", state.CountLabel())
	for _, m := range state.Results {
		r.writePlain("%s  %s (%s)\n", m.ImdbID, m.Title, m.Year)
	}
	return nil
}

// Details prints the catalog record of one movie.
func (r *Runner) Details(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching movie details", "imdbID", id)
	movie, err := r.Catalog().Details(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%s)", movie.Title, movie.Year))
	r.writePlain("Released: %s\n", movie.Released)
	r.writePlain("Runtime: %s\n", movie.Runtime)
	r.writePlain("Genre: %s\n", movie.Genre)
	r.writePlain("IMDb rating: %s\n", movie.ImdbRating)
	r.writePlain("Director: %s\n", movie.Director)
	r.writePlain("Starring: %s\n", movie.Actors)
	if movie.Plot != "" {
		r.writePlainln("%s", movie.Plot)
	}
	return nil
}

// Open opens the IMDb page of a movie.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	url := shared.IMDbURL(id)
	if err := r.openURL(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	r.writePlain("Opened %s\n", url)
	return nil
}
