package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
)

// NewLogoutCommand returns the logout subcommand.
func NewLogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "End the current session",
		Action: runLogout,
	}
}

func runLogout(ctx context.Context, cmd *cli.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}

	if !d.sessions.Active() {
		fmt.Println("No active session.")
		return nil
	}

	// Best effort: the local session goes away even when the server
	// cannot be reached.
	if err := d.client.Logout(ctx); err != nil {
		slog.Warn("server logout failed", "error", err)
	}
	if err := d.sessions.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	fmt.Println("Logged out.")
	return nil
}
