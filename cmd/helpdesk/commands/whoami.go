// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/bureau-foundation/helpdesk/lib/session"
)

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the signed-in agent",
		Usage:   "helpdesk whoami",
		Run: func(args []string) error {
			saved, err := session.Load()
			if err != nil {
				return err
			}
			if saved == nil {
				fmt.Fprintln(os.Stderr, "not logged in; run 'helpdesk login'")
				return &cli.ExitError{Code: 1}
			}
			fmt.Printf("%s", saved.AgentName())
			if saved.Profile.Email != "" {
				fmt.Printf(" <%s>", saved.Profile.Email)
			}
			fmt.Println()
			return nil
		},
	}
}
