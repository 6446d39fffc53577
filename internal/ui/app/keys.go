// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/finsight-tui/internal/ui/chat"
	"github.com/jeranaias/finsight-tui/internal/ui/dashboard"
)

// KeyMap holds the global bindings handled before either pane sees a key.
type KeyMap struct {
	Quit       key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	Refresh    key.Binding
	ToggleHelp key.Binding
}

// DefaultKeyMap returns the global key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "switch pane"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh prices"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("F12", "more keys"),
		),
	}
}

// helpKeys combines the global and pane bindings for the help line.
type helpKeys struct {
	global    KeyMap
	dashboard dashboard.KeyMap
	chat      chat.KeyMap
	quick     key.Binding
}

func newHelpKeys(global KeyMap, d dashboard.KeyMap, c chat.KeyMap) helpKeys {
	return helpKeys{
		global:    global,
		dashboard: d,
		chat:      c,
		quick: key.NewBinding(
			key.WithKeys("f1", "f2", "f3"),
			key.WithHelp("F1-F3", "quick question"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (h helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		h.chat.Submit,
		h.chat.Send,
		h.quick,
		h.global.Refresh,
		h.global.NextPane,
		h.global.ToggleHelp,
		h.global.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (h helpKeys) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{h.global.NextPane, h.global.Refresh, h.global.ToggleHelp, h.global.Quit},
	}
	groups = append(groups, h.dashboard.FullHelp()...)
	groups = append(groups, h.chat.FullHelp()...)
	return groups
}
