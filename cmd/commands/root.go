// Package commands defines the taskdeck command-line surface.
package commands

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "taskdeck",
		Usage: "Terminal client for your task manager",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
		},
		Commands: []*cli.Command{
			NewLoginCommand(),
			NewRegisterCommand(),
			NewLogoutCommand(),
			NewDashboardCommand(),
			NewTasksCommand(),
			NewStatusCommand(),
		},
	}
}

// deps bundles what every subcommand needs.
type deps struct {
	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
}

// buildDeps loads config and wires the session store into the API client.
func buildDeps(cmd *cli.Command) (*deps, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	sessions := session.NewStore(config.Path())
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout.Duration(), sessions)

	return &deps{cfg: cfg, sessions: sessions, client: client}, nil
}
