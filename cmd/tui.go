package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/popcorn/internal/shared"
	"github.com/desertthunder/popcorn/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive movie tracker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	store, err := r.Store()
	if err != nil {
		return err
	}
	defer r.Close()

	model := ui.NewModel(ctx, ui.Options{
		Catalog:        r.Catalog(),
		Store:          store.Watched,
		Watched:        store.Watched.Load(),
		MinQueryLength: r.config.Catalog.MinQueryLength,
		Logger:         r.logger,
		OpenURL:        r.openURL,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
