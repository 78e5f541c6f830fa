package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"taskdeck/internal/config"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show session and configuration state",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := buildDeps(cmd)
			if err != nil {
				return err
			}

			fmt.Printf("API:     %s\n", d.cfg.API.BaseURL)
			fmt.Printf("Data:    %s\n", config.Path())
			if d.sessions.Active() {
				fmt.Println("Session: active")
			} else {
				fmt.Println("Session: none (run `taskdeck login`)")
			}
			return nil
		},
	}
}
