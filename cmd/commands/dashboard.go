package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"taskdeck/clients/tui"
	"taskdeck/internal/auth"
)

// NewDashboardCommand returns the dashboard subcommand.
func NewDashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Open the interactive task dashboard",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := buildDeps(cmd)
			if err != nil {
				return err
			}
			return tui.Run(d.cfg, d.client, d.sessions, auth.RouteDashboard)
		},
	}
}
