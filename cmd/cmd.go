// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the configuration file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recently applied migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive course browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive course browser",
		Action:  r.TUI,
	}
}

// catalogCommand handles catalog inspection
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect the course catalog",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the normalized catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.CatalogShow,
			},
			{
				Name:  "check-links",
				Usage: "Probe every lesson link and report failures",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second (default from config)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers (default from config)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogCheckLinks,
			},
		},
	}
}

// sectionsCommand lists sections with progress
func sectionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sections",
		Usage:  "List sections with progress; the active section is marked",
		Action: r.Sections,
	}
}

func selectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Make a section active",
		ArgsUsage: "<key>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key"},
		},
		Action: r.Select,
	}
}

func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Mark a lesson as watched",
		ArgsUsage: "<video-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Watch,
	}
}

func unwatchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "unwatch",
		Usage:     "Mark a lesson as not watched",
		ArgsUsage: "<video-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Unwatch,
	}
}

func commentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "comment",
		Usage:     "Set the comment for a lesson; an empty text clears it",
		ArgsUsage: "<video-id> [text]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
			&cli.StringArg{Name: "text"},
		},
		Action: r.Comment,
	}
}

// progressCommand exports a progress report
func progressCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Report watched lessons",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (text, markdown, csv, json)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to a file instead of stdout",
			},
		},
		Action: r.Progress,
	}
}

func urlCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "url",
		Usage:     "Print the embed URL for a lesson",
		ArgsUsage: "<video-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.URL,
	}
}

func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a lesson video in the browser",
		ArgsUsage: "<video-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Open,
	}
}

func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Clear watched lessons, comments and the active section",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Confirm clearing all saved progress",
			},
		},
		Action: r.Reset,
	}
}
