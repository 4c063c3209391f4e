// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Modal chrome overhead: 2 columns border + 2 columns padding = 4
// columns horizontal; 2 lines border + 1 title + 1 footer = 4 lines
// vertical. The inner content area gets the remainder.
const (
	modalChromeWidth  = 4
	modalChromeHeight = 4
	// Margin between the modal edge and the screen edge, so the user
	// can see the underlying view isn't gone.
	modalMargin = 4
)

// ModalSize returns the inner content area available to a centered
// modal on a screen of the given dimensions, capped at maxWidth and
// maxHeight (pass 0 for no cap).
func ModalSize(screenWidth, screenHeight, maxWidth, maxHeight int) (innerWidth, innerHeight int) {
	modalWidth := screenWidth - modalMargin*2
	modalHeight := screenHeight - modalMargin*2
	if maxWidth > 0 && modalWidth > maxWidth {
		modalWidth = maxWidth
	}
	if maxHeight > 0 && modalHeight > maxHeight {
		modalHeight = maxHeight
	}
	if modalWidth > screenWidth {
		modalWidth = screenWidth
	}
	if modalHeight > screenHeight {
		modalHeight = screenHeight
	}

	innerWidth = modalWidth - modalChromeWidth
	innerHeight = modalHeight - modalChromeHeight
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}
	return innerWidth, innerHeight
}

// RenderModal assembles a bordered, centered modal from a title line,
// content lines, and a footer line. Content lines are padded (or
// truncated) to innerWidth. Returns the rendered lines and the anchor
// position for overlay splicing.
func RenderModal(theme Theme, title, footer string, contentLines []string, innerWidth, screenWidth, screenHeight int) ([]string, int, int) {
	bgStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.OverlayBackground)

	footerStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.OverlayBackground)

	pad := func(line string) string {
		lineWidth := ansi.StringWidth(line)
		if lineWidth > innerWidth {
			return ansi.Truncate(line, innerWidth, "…")
		}
		return line + bgStyle.Render(strings.Repeat(" ", innerWidth-lineWidth))
	}

	var body []string
	body = append(body, pad(titleStyle.Render(title)))
	for _, line := range contentLines {
		body = append(body, pad(line))
	}
	body = append(body, pad(footerStyle.Render(footer)))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Background(theme.OverlayBackground)

	rendered := borderStyle.Render(strings.Join(body, "\n"))

	resultLines := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}

	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}

	return resultLines, anchorX, anchorY
}
