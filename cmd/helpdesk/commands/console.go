// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/bureau-foundation/helpdesk/lib/config"
	"github.com/bureau-foundation/helpdesk/lib/console"
	"github.com/bureau-foundation/helpdesk/lib/helpdesk"
	"github.com/bureau-foundation/helpdesk/lib/session"
)

func consoleCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "console",
		Summary: "Open the interactive agent console",
		Description: `Open the full-screen ticket console.

The left pane lists tickets with filtering and incremental paging; the
right pane holds the open ticket's conversation. Both refresh in the
background. Key bindings are shown in the status bar.`,
		Usage: "helpdesk console [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the config file")
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

			saved, err := session.Load()
			if err != nil {
				return err
			}
			if saved == nil {
				fmt.Fprintln(os.Stderr, "not logged in; run 'helpdesk login'")
				return &cli.ExitError{Code: 1}
			}

			// Log records route into the status bar instead of
			// corrupting the alternate screen.
			handler := console.NewTUILogHandler(slog.LevelInfo)
			logger := slog.New(handler)

			client, err := helpdesk.NewClient(helpdesk.Config{
				BaseURL:   configuration.ServerURL,
				Token:     saved.Token,
				AgentName: saved.AgentName(),
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			model := console.New(console.Options{
				Client:              client,
				Logger:              logger,
				ListPollInterval:    time.Duration(configuration.ListPollInterval),
				DetailPollInterval:  time.Duration(configuration.DetailPollInterval),
				Bell:                configuration.Bell,
				ComplaintReportBase: configuration.ComplaintReportURLBase,
			})

			program := tea.NewProgram(model, tea.WithAltScreen())
			handler.SetProgram(program)

			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("console: %w", err)
			}

			if finished, ok := final.(*console.Model); ok && finished.AuthFailed() {
				// The server rejected the token; the stale session is
				// useless for the next run too.
				if clearErr := session.Clear(); clearErr != nil {
					fmt.Fprintf(os.Stderr, "warning: clearing session: %v\n", clearErr)
				}
				fmt.Fprintln(os.Stderr, "session expired; run 'helpdesk login' to sign in again")
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
