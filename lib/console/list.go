// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/xeonx/timeago"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
	"github.com/bureau-foundation/helpdesk/lib/tui"
)

// Column widths for the list table. The subject column fills remaining
// space; all others are fixed.
const (
	columnWidthCode     = 21 // "TICKET-20260501-003 "
	columnWidthStatus   = 9  // " Pending " incl. badge dot
	columnWidthReporter = 15
	columnWidthAgo      = 13 // right-aligned "5 minutes ago"
)

// ListRenderer handles the table-style rendering of ticket rows within
// a given width.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme tui.Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// relativeAge renders an "N minutes ago" age for an ISO timestamp,
// relative to the given reference instant (injected for deterministic
// tests). Unparseable timestamps render as the empty string.
func relativeAge(timestamp string, reference time.Time) string {
	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}
	return timeago.English.FormatReference(parsed, reference)
}

// RenderRow renders one ticket as a table row:
//
//	TICKET-20260502-017  ● Open    Budi Santoso    Printer jammed again      5 minutes ago
//
// The selected flag switches to highlight styling. The reference
// instant drives the relative-age column.
func (renderer ListRenderer) RenderRow(summary ticket.Summary, selected bool, reference time.Time) string {
	subjectWidth := renderer.width - columnWidthCode - columnWidthStatus - columnWidthReporter - columnWidthAgo
	if subjectWidth < 10 {
		subjectWidth = 10
	}

	code := truncatePad(summary.DisplayCode, columnWidthCode)
	status := truncatePad("● "+string(summary.Status), columnWidthStatus)
	reporter := truncatePad(summary.ReporterName, columnWidthReporter)
	subject := summary.Subject
	if summary.Complaint != nil {
		subject += " ⚑"
	}
	subject = truncatePad(subject, subjectWidth)
	age := fmt.Sprintf("%*s", columnWidthAgo, relativeAge(summary.UpdatedAt, reference))

	if selected {
		baseStyle := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		row := " " + code + baseStyle.Bold(true).Render(status) + reporter + subject + age
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
	}

	codeStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	statusStyle := lipgloss.NewStyle().Foreground(renderer.theme.StatusColor(summary.Status))
	faint := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)

	row := " " +
		codeStyle.Render(code) +
		statusStyle.Render(status) +
		faint.Render(reporter) +
		codeStyle.Render(subject) +
		faint.Render(age)
	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// RenderFooter renders the line under the list rows: a page progress
// indicator while more rows exist, a completion notice once everything
// is visible, or a loading notice during the initial fetch. A first
// fetch that settled with an error leaves the footer blank; the error
// banner carries the message.
func (renderer ListRenderer) RenderFooter(store *Store) string {
	faint := lipgloss.NewStyle().Foreground(renderer.theme.HelpText)
	switch {
	case !store.Loaded():
		if store.Refreshing() {
			return faint.Render(" loading tickets…")
		}
		return ""
	case store.Advancing():
		return faint.Render(" loading more…")
	case store.HasMore():
		return faint.Render(fmt.Sprintf(" %d of %d — scroll for more",
			len(store.Visible()), len(store.Filtered())))
	default:
		return faint.Render(fmt.Sprintf(" all %d tickets shown", len(store.Filtered())))
	}
}

// truncatePad fits text to an exact visual width: truncating with an
// ellipsis when too long, space-padding when too short. The final
// column is a space separator.
func truncatePad(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return truncateString(text, width-2) + "… "
	}
	return text + strings.Repeat(" ", width-lipgloss.Width(text))
}

// truncateString truncates a string to maxWidth visual characters.
// Handles multi-byte characters correctly via lipgloss width
// measurement.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
