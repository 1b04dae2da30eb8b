// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the local cache.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the local cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles session operations against the board API.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the admin session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (falls back to MODAO_PASSWORD)",
						Sources: cli.EnvVars("MODAO_PASSWORD"),
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Invalidate the session and clear local credentials",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the authenticated user",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthWhoami,
			},
			{
				Name:  "import",
				Usage: "Adopt a bearer token from a browser session (Copy as cURL)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthImport,
			},
			{
				Name:   "status",
				Usage:  "Show the session lifecycle state",
				Action: r.AuthStatus,
			},
		},
	}
}

// suggestCommand submits a new suggestion to the board.
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest a YouTube video for the catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Action: r.Suggest,
	}
}

// catalogCommand handles approved-catalog operations.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse and maintain the approved catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List approved songs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page number",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Entries per page",
						Value: 5,
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CatalogList,
			},
			{
				Name:   "top5",
				Usage:  "Show the top-ranked songs",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.CatalogTop5,
			},
			{
				Name:  "update",
				Usage: "Point a catalog entry at a new YouTube link",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Catalog entry id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "url",
						Usage:    "New YouTube URL",
						Required: true,
					},
				},
				Action: r.CatalogUpdate,
			},
			{
				Name:  "delete",
				Usage: "Remove a catalog entry",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Catalog entry id",
						Required: true,
					},
				},
				Action: r.CatalogDelete,
			},
			{
				Name:  "open",
				Usage: "Open a catalog entry in the browser",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Catalog entry id",
						Required: true,
					},
				},
				Action: r.CatalogOpen,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to CSV, Markdown, or plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Base output path (extension is appended)",
					},
				},
				Action: r.CatalogExport,
			},
			{
				Name:  "sync",
				Usage: "Snapshot the catalog into the local cache database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CatalogSync,
			},
		},
	}
}

// moderateCommand handles the pending-suggestion queue.
func moderateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "moderate",
		Aliases: []string{"mod"},
		Usage:   "Review pending suggestions",
		Commands: []*cli.Command{
			{
				Name:   "pending",
				Usage:  "List suggestions awaiting review",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.ModeratePending,
			},
			{
				Name:  "approve",
				Usage: "Approve a pending suggestion",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ModerateApprove,
			},
			{
				Name:  "reject",
				Usage: "Reject a pending suggestion",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ModerateReject,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive moderation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for moderation and catalog curation",
		Action:  r.TUI,
	}
}
