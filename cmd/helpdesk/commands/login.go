// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/bureau-foundation/helpdesk/lib/config"
	"github.com/bureau-foundation/helpdesk/lib/helpdesk"
	"github.com/bureau-foundation/helpdesk/lib/secret"
	"github.com/bureau-foundation/helpdesk/lib/session"
)

func loginCommand() *cli.Command {
	var configPath string
	var email string
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate and save a session",
		Description: `Authenticate against the helpdesk backend with email and password.

The password is read interactively without echo. For non-interactive
use pass --password-file (or --password-file - to read from stdin).
The resulting token and agent profile are saved to the session file
and used by every other command until logout.`,
		Usage: "helpdesk login [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the config file")
			flags.StringVar(&email, "email", "", "agent email address (prompted when omitted)")
			flags.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting (- for stdin)")
			return flags
		},
		Run: func(args []string) error {
			configuration, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := configuration.Validate(); err != nil {
				return err
			}

			if email == "" {
				fmt.Fprint(os.Stderr, "email: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return fmt.Errorf("email is required")
			}

			password, err := readPassword(passwordFile)
			if err != nil {
				return err
			}
			defer password.Close()

			client, err := helpdesk.NewClient(helpdesk.Config{
				BaseURL: configuration.ServerURL,
				Logger:  cli.NewCommandLogger().With("command", "login"),
			})
			if err != nil {
				return err
			}

			result, err := client.SignIn(context.Background(), email, password.String())
			if err != nil {
				return fmt.Errorf("signin failed: %w", err)
			}

			if err := session.Save(&session.Session{
				Token: result.Token,
				Profile: session.Profile{
					Name:     result.Name,
					Username: result.Username,
					Email:    result.Email,
				},
			}); err != nil {
				return err
			}

			name := result.Name
			if name == "" {
				name = result.Username
			}
			fmt.Printf("logged in as %s\n", name)
			return nil
		},
	}
}

// readPassword reads the password from the given file ("-" for stdin),
// or prompts on the terminal without echo when no file is given. The
// caller closes the returned buffer.
func readPassword(passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" {
		buffer, err := secret.ReadFromPath(passwordFile)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		return buffer, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal; use --password-file")
	}
	fmt.Fprint(os.Stderr, "password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	buffer, err := secret.NewFromBytes(raw)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
