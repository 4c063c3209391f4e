// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/helpdesk/lib/helpdesk"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
	"github.com/bureau-foundation/helpdesk/lib/tui"
)

// complaintCategories maps each escalation division to its
// troubleshoot options. The first option of a division is the default
// when the division changes. These mirror the complaint tracker's
// intake form.
var complaintCategories = []struct {
	name    string
	options []string
}{
	{"Network", []string{"Miktrotik", "Maipu", "SFP", "Patchcord", "HUB", "Local Network", "Internet"}},
	{"IT Support", []string{"Software Ezitama", "Software Parkee", "CPU", "CPU FAN", "RAM", "NVME_HDD", "Motherboard", "Booster", "Printer Thermal", "Monitor", "Speaker", "Amplifier", "Intercom", "NVR", "Camera", "Printer Office", "HDMI", "PCIE", "VGA Card", "LAN Card"}},
	{"IOT_Development", []string{"Dashboard Income", "IOT System", "Dashboard", "LPR Alfabeta"}},
	{"Alfabeta", []string{"Konfigurasi Kamera", "Konfigurasi NUC"}},
	{"Infra", []string{"Power Listrik", "Kabel LAN", "Kabel FO", "Kabel Loop", "Boomgate", "VLD"}},
	{"Parkee System", []string{"Parkee Agent", "Parkee Mobile Cashier", "Network Issue"}},
}

// complaintPriorities are the tracker's priority levels with their
// SLA labels.
var complaintPriorities = []struct {
	value string
	label string
}{
	{"High", "High - 2 days"},
	{"Medium", "Medium - 4 days"},
	{"Low", "Low - 6 days"},
}

// Focusable fields of the complaint modal, in tab order.
const (
	complaintFieldCategory = iota
	complaintFieldTroubleshoot
	complaintFieldPriority
	complaintFieldDescription
	complaintFieldCount
)

// complaintModal is the escalation form: division and troubleshoot
// pickers, priority, and a description editor. Reporter, location, and
// title are prefilled from the ticket and submitted as-is.
type complaintModal struct {
	displayCode string
	reporter    string
	contact     string
	location    string
	issueDate   string

	categoryIndex     int
	troubleshootIndex int
	priorityIndex     int // default Medium

	description textarea.Model
	focus       int
	validation  string
}

func newComplaintModal(detail *ticket.Detail, today time.Time, innerWidth int) *complaintModal {
	location := detail.LocationName
	if location == "" {
		location = detail.LocationCode
	}

	description := textarea.New()
	description.Placeholder = "describe the issue for the complaint team"
	description.SetWidth(innerWidth)
	description.SetHeight(4)
	description.CharLimit = 0

	modal := &complaintModal{
		displayCode:   detail.DisplayCode,
		reporter:      detail.ReporterName,
		contact:       detail.ReporterContact,
		location:      location,
		issueDate:     today.Format("2006-01-02"),
		priorityIndex: 1,
		description:   description,
		focus:         complaintFieldDescription,
	}
	modal.description.Focus()
	return modal
}

// cycleFocus moves to the next field, keeping the textarea's focus
// state in step.
func (modal *complaintModal) cycleFocus() {
	modal.focus = (modal.focus + 1) % complaintFieldCount
	if modal.focus == complaintFieldDescription {
		modal.description.Focus()
	} else {
		modal.description.Blur()
	}
}

// Update handles key input: tab cycles fields, left/right cycle the
// focused picker, and everything else goes to the description editor
// when it has focus.
func (modal *complaintModal) Update(message tea.Msg) tea.Cmd {
	keyMessage, isKey := message.(tea.KeyMsg)
	if isKey {
		switch keyMessage.Type {
		case tea.KeyTab:
			modal.cycleFocus()
			return nil
		case tea.KeyLeft, tea.KeyRight:
			if modal.focus != complaintFieldDescription {
				modal.cyclePicker(keyMessage.Type == tea.KeyRight)
				return nil
			}
		}
	}

	if modal.focus == complaintFieldDescription {
		var command tea.Cmd
		modal.description, command = modal.description.Update(message)
		if strings.TrimSpace(modal.description.Value()) != "" {
			modal.validation = ""
		}
		return command
	}
	return nil
}

func (modal *complaintModal) cyclePicker(forward bool) {
	step := func(index, length int) int {
		if forward {
			return (index + 1) % length
		}
		return (index + length - 1) % length
	}
	switch modal.focus {
	case complaintFieldCategory:
		modal.categoryIndex = step(modal.categoryIndex, len(complaintCategories))
		// Division change resets the troubleshoot to its first option.
		modal.troubleshootIndex = 0
	case complaintFieldTroubleshoot:
		modal.troubleshootIndex = step(modal.troubleshootIndex, len(complaintCategories[modal.categoryIndex].options))
	case complaintFieldPriority:
		modal.priorityIndex = step(modal.priorityIndex, len(complaintPriorities))
	}
}

// Request assembles the escalation form, or a validation error when
// the description is empty.
func (modal *complaintModal) Request() (helpdesk.ComplaintRequest, error) {
	description := strings.TrimSpace(modal.description.Value())
	if description == "" {
		return helpdesk.ComplaintRequest{}, ErrEmptyMessage
	}
	category := complaintCategories[modal.categoryIndex]
	return helpdesk.ComplaintRequest{
		TicketDisplayCode: modal.displayCode,
		ReporterName:      modal.reporter,
		ReporterPhone:     modal.contact,
		Location:          modal.location,
		IssueDate:         modal.issueDate,
		Category:          category.name,
		Troubleshoot:      category.options[modal.troubleshootIndex],
		Priority:          complaintPriorities[modal.priorityIndex].value,
		IssueTitle:        "Complaint for ticket: " + modal.displayCode,
		IssueDescription:  description,
	}, nil
}

// Block records a validation or submission failure on the modal.
func (modal *complaintModal) Block(err error) {
	modal.validation = err.Error()
}

// Category returns the selected division name, recorded on the ticket
// as the complaint link's category after a successful escalation.
func (modal *complaintModal) Category() string {
	return complaintCategories[modal.categoryIndex].name
}

// Render produces the modal overlay lines and anchor.
func (modal *complaintModal) Render(theme tui.Theme, screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth, _ := tui.ModalSize(screenWidth, screenHeight, 72, 0)

	text := lipgloss.NewStyle().Foreground(theme.NormalText).Background(theme.OverlayBackground)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText).Background(theme.OverlayBackground)

	picker := func(field int, label, value string) string {
		line := label + " ◂ " + value + " ▸"
		if modal.focus == field {
			return lipgloss.NewStyle().
				Background(theme.SelectedBackground).
				Foreground(theme.SelectedForeground).
				Render(line)
		}
		return text.Render(line)
	}

	category := complaintCategories[modal.categoryIndex]
	content := []string{
		"",
		faint.Render(strings.TrimSuffix(modal.reporter+" · "+modal.location, " · ")),
		"",
		picker(complaintFieldCategory, "division:     ", category.name),
		picker(complaintFieldTroubleshoot, "troubleshoot: ", category.options[modal.troubleshootIndex]),
		picker(complaintFieldPriority, "priority:     ", complaintPriorities[modal.priorityIndex].label),
		"",
		faint.Render("description:"),
	}
	content = append(content, strings.Split(modal.description.View(), "\n")...)

	if modal.validation != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).
			Background(theme.ErrorBackground)
		content = append(content, "", errorStyle.Render(" "+modal.validation+" "))
	}

	title := "Escalate " + modal.displayCode
	footer := "Tab next field  ◂▸ change  Ctrl+D submit  Esc cancel"
	return tui.RenderModal(theme, title, footer, content, innerWidth, screenWidth, screenHeight)
}
