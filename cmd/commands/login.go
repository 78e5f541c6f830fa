package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// NewLoginCommand returns the login subcommand.
func NewLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (prompted when omitted)",
			},
		},
		Action: runLogin,
	}
}

func runLogin(ctx context.Context, cmd *cli.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}

	email := cmd.String("email")
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	token, err := d.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := d.sessions.Set(token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	fmt.Println("Logged in. Run `taskdeck dashboard` to open your tasks.")
	return nil
}

// promptLine reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
