package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "QuestForge"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Serves proof submission, review, quest and user apis together with the analysis workers.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Flags:       []cli.Flag{configFlag},
			Category:    "Database",
			Description: `Creates or updates the database schema and exits.`,
		},
	}

	s.app = app
}

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "Path of the toml configuration file",
	Value: "",
}
