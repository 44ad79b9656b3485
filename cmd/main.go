package main

import (
	"context"
	"os"

	"github.com/desertthunder/popcorn/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})
	defer runner.Close()

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if msg := shared.UserMessage(err); msg != "" && msg != err.Error() {
			logger.Error(msg)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Without a subcommand it launches the TUI.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "popcorn",
		Usage:    "Search movies, rate them and keep a watched list",
		Version:  "0.1.0",
		Flags:    []cli.Flag{configFlag()},
		Before:   r.Configure,
		Action:   r.TUI,
		Commands: r.register(),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}
