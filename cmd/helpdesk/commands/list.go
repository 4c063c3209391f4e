// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"github.com/xeonx/timeago"

	"github.com/bureau-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/bureau-foundation/helpdesk/lib/config"
	"github.com/bureau-foundation/helpdesk/lib/helpdesk"
	"github.com/bureau-foundation/helpdesk/lib/session"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

func listCommand() *cli.Command {
	var configPath string
	var statusFilter string
	var asJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List tickets without entering the console",
		Description: `Fetch the ticket inbox and print it, newest first.

Useful for scripts and quick checks; the interactive console offers
the same list with live updates.`,
		Usage: "helpdesk list [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the config file")
			flags.StringVar(&statusFilter, "status", "all", "filter by status: open, pending, closed, all")
			flags.BoolVar(&asJSON, "json", false, "print the raw ticket list as JSON")
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

			client, err := helpdesk.NewClient(helpdesk.Config{
				BaseURL:   configuration.ServerURL,
				Token:     saved.Token,
				AgentName: saved.AgentName(),
				Logger:    cli.NewCommandLogger().With("command", "list"),
			})
			if err != nil {
				return err
			}

			summaries, err := client.ListTickets(context.Background())
			if err != nil {
				return err
			}

			if statusFilter != "all" && statusFilter != "" {
				wanted := ticket.StatusFromWire(statusFilter)
				filtered := summaries[:0]
				for _, summary := range summaries {
					if summary.Status == wanted {
						filtered = append(filtered, summary)
					}
				}
				summaries = filtered
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(summaries)
			}

			now := time.Now()
			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "CODE\tSTATUS\tREPORTER\tSUBJECT\tUPDATED")
			for _, summary := range summaries {
				updated := summary.UpdatedAt
				if parsed, err := time.Parse(time.RFC3339, summary.UpdatedAt); err == nil {
					updated = timeago.English.FormatReference(parsed, now)
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					summary.DisplayCode, summary.Status, summary.ReporterName,
					summary.Subject, updated)
			}
			return writer.Flush()
		},
	}
}
