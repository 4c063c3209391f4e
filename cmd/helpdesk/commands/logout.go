// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/bureau-foundation/helpdesk/lib/session"
)

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Usage:   "helpdesk logout",
		Run: func(args []string) error {
			if err := session.Clear(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			fmt.Println("logged out")
			return nil
		},
	}
}
