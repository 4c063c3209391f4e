// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
)

// Theme defines the color palette for the helpdesk console. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Ticket status colors.
	StatusOpen    lipgloss.Color
	StatusPending lipgloss.Color
	StatusClosed  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Chat bubbles.
	AgentBubbleBackground    lipgloss.Color
	CustomerBubbleBackground lipgloss.Color

	// Error banner.
	ErrorForeground lipgloss.Color
	ErrorBackground lipgloss.Color

	// Autolinked references (complaint report links).
	LinkForeground lipgloss.Color

	// Floating overlays: dropdowns and modals.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// StatusColor returns the color for a ticket status. Unknown values
// return FaintText.
func (theme Theme) StatusColor(status ticket.Status) lipgloss.Color {
	switch status {
	case ticket.StatusOpen:
		return theme.StatusOpen
	case ticket.StatusPending:
		return theme.StatusPending
	case ticket.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:    lipgloss.Color("114"), // green
	StatusPending: lipgloss.Color("220"), // yellow/amber
	StatusClosed:  lipgloss.Color("245"), // gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	AgentBubbleBackground:    lipgloss.Color("24"),  // dark teal
	CustomerBubbleBackground: lipgloss.Color("237"), // slightly lighter than terminal background

	ErrorForeground: lipgloss.Color("255"),
	ErrorBackground: lipgloss.Color("88"), // dark red

	LinkForeground: lipgloss.Color("75"), // blue

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
