// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat pane.
type KeyMap struct {
	Submit   key.Binding
	Send     key.Binding
	Newline  key.Binding
	Quick    [3]key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat pane.
// Enter submits; alt+enter and ctrl+j insert a line break instead.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("M-Enter/C-j", "new line"),
		),
		Quick: [3]key.Binding{
			key.NewBinding(
				key.WithKeys("alt+1", "f1"),
				key.WithHelp("F1", "quick question 1"),
			),
			key.NewBinding(
				key.WithKeys("alt+2", "f2"),
				key.WithHelp("F2", "quick question 2"),
			),
			key.NewBinding(
				key.WithKeys("alt+3", "f3"),
				key.WithHelp("F3", "quick question 3"),
			),
		},
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Send, k.Newline, k.PageUp}
}

// FullHelp returns all bindings grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Send, k.Newline},
		{k.Quick[0], k.Quick[1], k.Quick[2]},
		{k.PageUp, k.PageDown},
	}
}

// QuickIndex returns which quick question binding msg matches, or -1.
func (k KeyMap) QuickIndex(msg tea.KeyMsg) int {
	for i, b := range k.Quick {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
