// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ringBell writes the terminal bell directly to /dev/tty, bypassing
// bubbletea's managed output — BEL is invisible (no screen effect) so
// it is safe to emit alongside the TUI renderer, and going through the
// controlling terminal keeps it out of any piped or captured stdout.
//
// Returns nil (no message) when the bell is disabled or no controlling
// terminal exists (e.g. under tests).
func ringBell(enabled bool) tea.Cmd {
	if !enabled {
		return nil
	}
	return func() tea.Msg {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return nil
		}
		defer tty.Close()
		tty.Write([]byte("\a"))
		return nil
	}
}
