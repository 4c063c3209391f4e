// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/helpdesk/lib/ticket"
	"github.com/bureau-foundation/helpdesk/lib/tui"
)

// bubbleWidthFraction caps a chat bubble at this share of the pane so
// the alignment (customer left, agent right) stays readable.
const bubbleWidthFraction = 0.72

// ChatRenderer renders the open ticket's header and message thread for
// the chat viewport.
type ChatRenderer struct {
	theme tui.Theme
	width int

	// complaintReportBase is the public URL prefix for escalated
	// complaints, shown in the header when the ticket carries a link.
	complaintReportBase string
}

// NewChatRenderer creates a ChatRenderer for the given pane width.
func NewChatRenderer(theme tui.Theme, width int, complaintReportBase string) ChatRenderer {
	return ChatRenderer{theme: theme, width: width, complaintReportBase: complaintReportBase}
}

// RenderHeader renders the chat pane's header block: display code with
// status badge, reporter identity, location, and the complaint link
// when the ticket has been escalated.
func (renderer ChatRenderer) RenderHeader(detail *ticket.Detail) string {
	header := lipgloss.NewStyle().Foreground(renderer.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	statusStyle := lipgloss.NewStyle().Foreground(renderer.theme.StatusColor(detail.Status)).Bold(true)

	title := header.Render(detail.DisplayCode) + "  " + statusStyle.Render("● "+string(detail.Status))

	identity := detail.ReporterName
	if detail.ReporterContact != "" {
		identity += " · " + detail.ReporterContact
	}
	if detail.LocationName != "" {
		identity += " · " + detail.LocationName
	}
	lines := []string{title, faint.Render(identity)}

	if detail.Complaint != nil {
		link := "complaint " + detail.Complaint.ComplaintID
		if renderer.complaintReportBase != "" {
			link = fmt.Sprintf("%s/%s/%s", renderer.complaintReportBase,
				detail.Complaint.ComplaintID, detail.Complaint.Category)
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(renderer.theme.LinkForeground).Render("⚑ "+link))
	}

	rule := lipgloss.NewStyle().Foreground(renderer.theme.BorderColor).
		Render(strings.Repeat("─", renderer.width))
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// RenderThread renders the full message thread as viewport content:
// customer bubbles left-aligned, agent bubbles right-aligned, each
// with a faint sender/time caption. Optimistic messages awaiting the
// server show a sending marker.
func (renderer ChatRenderer) RenderThread(detail *ticket.Detail) string {
	var blocks []string
	for _, message := range detail.Messages {
		blocks = append(blocks, renderer.renderBubble(message))
	}
	if len(blocks) == 0 {
		empty := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).
			Render("no messages yet")
		blocks = append(blocks, empty)
	}
	return strings.Join(blocks, "\n\n")
}

// messageClock renders a message timestamp as a short local time.
func messageClock(timestamp string) string {
	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return parsed.Local().Format("Jan 2 15:04")
}

func (renderer ChatRenderer) renderBubble(message ticket.Message) string {
	maxBubble := int(float64(renderer.width) * bubbleWidthFraction)
	if maxBubble < 20 {
		maxBubble = 20
	}
	// Bubble chrome: 1 column padding each side.
	bodyWidth := maxBubble - 2

	body := renderMessageBody(message.Text, renderer.theme, bodyWidth)

	background := renderer.theme.CustomerBubbleBackground
	if message.Origin == ticket.OriginAgent {
		background = renderer.theme.AgentBubbleBackground
	}
	bubble := lipgloss.NewStyle().
		Background(background).
		Padding(0, 1).
		MaxWidth(maxBubble).
		Render(body)

	caption := message.Sender + " · " + messageClock(message.Timestamp)
	if strings.HasPrefix(message.ID, "temp-") {
		caption += " · sending…"
	}
	captionLine := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).Render(caption)

	block := captionLine + "\n" + bubble
	if message.Origin == ticket.OriginAgent {
		return lipgloss.PlaceHorizontal(renderer.width, lipgloss.Right, block)
	}
	return lipgloss.PlaceHorizontal(renderer.width, lipgloss.Left, block)
}

// RenderResolution renders the closing note block appended after the
// thread on closed tickets that carry one.
func (renderer ChatRenderer) RenderResolution(detail *ticket.Detail) string {
	if detail.Status != ticket.StatusClosed || strings.TrimSpace(detail.ResolutionNote) == "" {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(renderer.theme.StatusClosed).Bold(true).
		Render("resolution")
	note := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).
		Width(renderer.width).Render(detail.ResolutionNote)
	return "\n" + label + "\n" + note
}
