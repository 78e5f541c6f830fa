package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewRegisterCommand returns the register subcommand.
func NewRegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Display name (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (prompted when omitted)",
			},
		},
		Action: runRegister,
	}
}

func runRegister(ctx context.Context, cmd *cli.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("name")
	if name == "" {
		if name, err = promptLine("Name: "); err != nil {
			return err
		}
	}
	email := cmd.String("email")
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}

	if name == "" || email == "" || password == "" {
		return fmt.Errorf("name, email and password are required")
	}
	// Checked before any network call.
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	token, err := d.client.Register(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := d.sessions.Set(token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	fmt.Println("Registration successful. Run `taskdeck dashboard` to open your tasks.")
	return nil
}
