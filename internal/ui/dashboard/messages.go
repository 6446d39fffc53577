// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/finsight-tui/internal/stocks"
)

// RefreshMsg asks the stock pane to start a fetch. It is ignored while a
// fetch is outstanding.
type RefreshMsg struct{}

// FetchResultMsg carries a finished fetch back to the Update loop.
type FetchResultMsg struct {
	Result stocks.Result
}

// SnapshotMsg announces a new stock snapshot to other panes.
type SnapshotMsg struct {
	Records []stocks.Record
}

// fetchCmd runs one fetch off the Update goroutine.
func fetchCmd(ctx context.Context, c *stocks.Controller, t stocks.Ticket) tea.Cmd {
	return func() tea.Msg {
		return FetchResultMsg{Result: c.Fetch(ctx, t)}
	}
}

// snapshotCmd publishes the current records.
func snapshotCmd(records []stocks.Record) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Records: records}
	}
}

// Refresh returns a command that requests a refresh.
func Refresh() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}
