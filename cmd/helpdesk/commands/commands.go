// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the helpdesk CLI command tree.
package commands

import (
	"fmt"

	"github.com/bureau-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/bureau-foundation/helpdesk/lib/version"
)

// Root builds and returns the complete helpdesk CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "helpdesk",
		Description: `Helpdesk: terminal console for support agents.

Work support tickets from the terminal: browse and filter the inbox,
chat with reporters, close tickets with resolution notes, and escalate
recurring problems to the complaint tracker.`,
		Subcommands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			listCommand(),
			consoleCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ []string) error {
					fmt.Printf("helpdesk %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authenticate against the backend (saves session locally)",
				Command:     "helpdesk login --email agent@example.com",
			},
			{
				Description: "Open the interactive console",
				Command:     "helpdesk console",
			},
			{
				Description: "List open tickets without entering the console",
				Command:     "helpdesk list --status open",
			},
		},
	}
}
