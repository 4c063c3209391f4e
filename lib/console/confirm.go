// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
	"github.com/bureau-foundation/helpdesk/lib/tui"
)

// statusModal is the confirmation step for a status flip. It shows the
// ticket context and, when the transition closes the ticket, embeds
// the mandatory resolution-note editor. Commit stays blocked until the
// note is non-empty.
type statusModal struct {
	transition  StatusTransition
	displayCode string
	subject     string
	reporter    string
	location    string

	note       textarea.Model
	validation string
}

// statusModalNoteHeight is the resolution-note editor height in rows.
const statusModalNoteHeight = 4

func newStatusModal(transition StatusTransition, detail *ticket.Detail, innerWidth int) *statusModal {
	modal := &statusModal{
		transition:  transition,
		displayCode: detail.DisplayCode,
		subject:     detail.Subject,
		reporter:    detail.ReporterName,
		location:    detail.LocationName,
	}
	if transition.RequiresNote() {
		note := textarea.New()
		note.Placeholder = "what resolved this ticket?"
		note.SetWidth(innerWidth)
		note.SetHeight(statusModalNoteHeight)
		note.CharLimit = 0
		note.Focus()
		modal.note = note
	}
	return modal
}

// Update routes key input to the note editor while one is present.
func (modal *statusModal) Update(message tea.Msg) tea.Cmd {
	if !modal.transition.RequiresNote() {
		return nil
	}
	var command tea.Cmd
	modal.note, command = modal.note.Update(message)
	if strings.TrimSpace(modal.note.Value()) != "" {
		modal.validation = ""
	}
	return command
}

// Note returns the resolution note text.
func (modal *statusModal) Note() string {
	if !modal.transition.RequiresNote() {
		return ""
	}
	return modal.note.Value()
}

// Block records a validation failure so the modal shows why the commit
// did not go through.
func (modal *statusModal) Block(err error) {
	modal.validation = err.Error()
}

// Render produces the modal overlay lines and anchor.
func (modal *statusModal) Render(theme tui.Theme, screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth, _ := tui.ModalSize(screenWidth, screenHeight, 64, 0)

	text := lipgloss.NewStyle().Foreground(theme.NormalText).Background(theme.OverlayBackground)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText).Background(theme.OverlayBackground)
	fromStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(modal.transition.Current)).Background(theme.OverlayBackground)
	toStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(modal.transition.NextDisplay)).Bold(true).Background(theme.OverlayBackground)

	var content []string
	content = append(content,
		"",
		text.Render(modal.subject),
		faint.Render(strings.TrimSuffix(modal.reporter+" · "+modal.location, " · ")),
		"",
		fromStyle.Render(string(modal.transition.Current))+
			faint.Render(" → ")+
			toStyle.Render(string(modal.transition.NextDisplay)),
		"")

	if modal.transition.RequiresNote() {
		content = append(content, faint.Render("resolution note:"))
		content = append(content, strings.Split(modal.note.View(), "\n")...)
	}
	if modal.validation != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).
			Background(theme.ErrorBackground)
		content = append(content, "", errorStyle.Render(" "+modal.validation+" "))
	}

	title := fmt.Sprintf("Change status of %s", modal.displayCode)
	footer := "Ctrl+D confirm  Esc cancel"
	return tui.RenderModal(theme, title, footer, content, innerWidth, screenWidth, screenHeight)
}
