// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func credentialFlags(usernameUsage, passwordUsage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   usernameUsage,
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   passwordUsage,
		},
	}
}

// setupCommand writes a config file from the embedded template and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml when missing and initialize the database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// initDBCommand applies the schema migrations.
func initDBCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "initdb",
		Usage: "Initialize the database",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "Drop all tables before initializing",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead of initializing",
			},
		},
		Action: r.InitDB,
	}
}

// forgeCommand replaces all data with the admin and the fixture movies.
func forgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "forge",
		Usage: "Reset the database with an admin and fake movies",
		Flags: append(
			[]cli.Flag{configFlag()},
			credentialFlags("Admin username (default: admin)", "Admin password (default: watchlist)")...,
		),
		Action: r.Forge,
	}
}

// adminCommand creates or updates the admin credentials.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Create or update the admin user",
		Flags: append(
			[]cli.Flag{configFlag()},
			credentialFlags("Admin username (prompted when missing)", "Admin password (prompted when missing)")...,
		),
		Action: r.Admin,
	}
}

// serveCommand runs the web application.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the watchlist web server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the watchlist in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// exportCommand writes the watchlist in a text format.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the watchlist as CSV, Markdown, JSON or text",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, markdown, json, text)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Export,
	}
}
