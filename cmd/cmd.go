// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags(pretty bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: pretty,
		},
	}
}

// setupCommand handles configuration and database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file, initialize the database and run migrations",
		Action: r.Setup,
		Commands: []*cli.Command{
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// searchCommand runs a single title search against the catalog.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search the catalog by title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  outputFlags(false),
		Action: r.Search,
	}
}

// detailsCommand looks up a single movie by imdbID.
func detailsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "details",
		Aliases: []string{"info"},
		Usage:   "Show the details of a movie by IMDb id",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags:  outputFlags(true),
		Action: r.Details,
	}
}

// openCommand opens a movie's IMDb page.
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open the IMDb page of a movie in the browser",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Action: r.Open,
	}
}

// watchedCommand manages the persisted watched list.
func watchedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watched",
		Aliases: []string{"w"},
		Usage:   "Manage the list of movies you watched",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show the watched list and its summary",
				Flags:  outputFlags(false),
				Action: r.WatchedList,
			},
			{
				Name:  "add",
				Usage: "Rate a movie and add it to the watched list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "rating",
						Aliases:  []string{"r"},
						Usage:    "Your rating, 1 to 10",
						Required: true,
					},
				},
				Action: r.WatchedAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a movie from the watched list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.WatchedRemove,
			},
			{
				Name:  "export",
				Usage: "Export the watched list (csv, md, txt, json, yaml)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (directory for md with --posters)",
					},
					&cli.BoolFlag{
						Name:  "posters",
						Usage: "Download posters next to a Markdown export",
					},
				},
				Action: r.WatchedExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive tracker.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie tracker (default)",
		Action:  r.TUI,
	}
}
