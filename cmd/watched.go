package main

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/popcorn/internal/formatter"
	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/session"
	"github.com/desertthunder/popcorn/internal/shared"
	"github.com/urfave/cli/v3"
)

// WatchedList prints the watched list and its summary.
func (r *Runner) WatchedList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.Store()
	if err != nil {
		return err
	}
	defer r.Close()

	list := store.Watched.Load()

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(list, cmd.Bool("pretty"))
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return r.writePlain("%s\n", data)
	}

	s := models.Summarize(list)
	r.writePlainHeader("Movies you watched")
	r.writePlain("#️⃣ %s  ⭐️ %s  🌟 %s  ⏳ %s\n\n", s.CountLabel(), s.ImdbLabel(), s.UserLabel(), s.RuntimeLabel())
	for _, m := range list {
		r.writePlain("%s  %s (%s)  ⭐️ %s  🌟 %s  ⏳ %s min\n",
			m.ImdbID, m.Title, m.Year, label(m.ImdbRating), label(m.UserRating), label(m.Runtime))
	}
	return nil
}

// WatchedAdd looks up a movie, rates it and adds it to the watched list.
func (r *Runner) WatchedAdd(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	rating := int(cmd.Int("rating"))
	if rating < 1 || rating > session.MaxRating {
		return fmt.Errorf("%w: rating must be between 1 and %d", shared.ErrInvalidFlag, session.MaxRating)
	}

	store, err := r.Store()
	if err != nil {
		return err
	}
	defer r.Close()

	if existing, ok := models.FindWatched(store.Watched.Load(), id); ok {
		r.writePlain("You rated this movie %s\n", label(existing.UserRating))
		return nil
	}

	detail, err := r.Catalog().Details(ctx, id)
	if err != nil {
		return err
	}

	list, err := store.Watched.Add(detail.ToWatched(float64(rating)))
	if err != nil {
		return fmt.Errorf("failed to save watched list: %w", err)
	}

	r.logger.Info("added to watched list", "imdbID", id, "rating", rating)
	r.writePlain("✓ Added %s (%s) rated %d\n", detail.Title, detail.Year, rating)
	r.writePlain("Watched: %s\n", models.Summarize(list).CountLabel())
	return nil
}

// WatchedRemove drops a movie from the watched list.
func (r *Runner) WatchedRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	store, err := r.Store()
	if err != nil {
		return err
	}
	defer r.Close()

	before := store.Watched.Load()
	if _, ok := models.FindWatched(before, id); !ok {
		r.writePlain("%s is not in the watched list\n", id)
		return nil
	}

	list, err := store.Watched.Remove(id)
	if err != nil {
		return fmt.Errorf("failed to save watched list: %w", err)
	}

	r.logger.Info("removed from watched list", "imdbID", id)
	r.writePlain("✓ Removed %s\n", id)
	r.writePlain("Watched: %s\n", models.Summarize(list).CountLabel())
	return nil
}

// WatchedExport writes the watched list to a file.
func (r *Runner) WatchedExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	store, err := r.Store()
	if err != nil {
		return err
	}
	defer r.Close()

	list := store.Watched.Load()
	output := cmd.String("output")

	if cmd.Bool("posters") {
		if format != formatter.Markdown {
			return fmt.Errorf("%w: --posters requires --format md", shared.ErrInvalidFlag)
		}

		result, err := formatter.WriteMarkdownExport(ctx, r.httpClient, list, output, true)
		if err != nil {
			return err
		}
		for _, id := range result.Failed {
			r.logger.Warn("poster not saved", "imdbID", id)
		}

		r.writePlain("✓ Exported %d movies to %s\n", len(list), result.Directory)
		r.writePlain("  Posters: %d\n", len(result.Posters))
		return nil
	}

	path, err := formatter.WriteExport(list, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("watched list exported", "format", format, "path", path)
	r.writePlain("✓ Exported %d movies to %s\n", len(list), path)
	return nil
}

func label(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%g", v)
}
