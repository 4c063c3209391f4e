// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or chat scrolling
	// depending on current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching.
	FocusToggle key.Binding

	// List actions.
	Open           key.Binding // Open the highlighted ticket.
	FilterActivate key.Binding // Enter filter mode.
	FilterClear    key.Binding // Clear filter / dismiss overlays.
	StatusFilter   key.Binding // Open the status filter dropdown.

	// Detail actions.
	Reply        key.Binding // Open the highlighted ticket into the reply input.
	ChangeStatus key.Binding // Open the status confirmation modal.
	Escalate     key.Binding // Open the complaint escalation modal.
	Back         key.Binding // Deselect the open ticket.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open ticket"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear"),
	),
	StatusFilter: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	Reply: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "reply"),
	),
	ChangeStatus: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "change status"),
	),
	Escalate: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "escalate"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("BS", "back to list"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
