// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/finsight-tui/internal/ui/styles"
)

const (
	appTitle    = "Financial Insights Bot"
	appSubtitle = "Get AI-powered stock analysis and market insights"
	marketOpen  = "* Market Open - Live Prices"

	defaultWidth  = 100
	defaultHeight = 30

	// stocksShare is the stock pane's percentage of the width side by side.
	stocksShare = 45
)

// View renders the header, the panes, and the help line.
func (m *Model) View() string {
	header := m.renderHeader()
	var body string
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.clipStocks(m.dashboard.View()),
			m.chat.View(),
		)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.dashboard.View(), m.chat.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderHelp())
}

// layout sizes both panes for the current window.
func (m *Model) layout() {
	width, height := m.size()
	m.theme.SetSize(width, height)
	m.help.Width = width

	bodyHeight := height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderHelp())
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		stocksHeight := bodyHeight * 2 / 5
		m.dashboard.SetSize(width, stocksHeight)
		m.chat.SetSize(width, bodyHeight-stocksHeight)
		return
	}

	stocksWidth := width * stocksShare / 100
	m.dashboard.SetSize(stocksWidth, bodyHeight)
	m.chat.SetSize(width-stocksWidth, bodyHeight)
}

// size returns the window size, or defaults before the first WindowSizeMsg.
func (m *Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// renderHeader draws the title block with the market status on the right.
func (m *Model) renderHeader() string {
	width, _ := m.size()
	style := m.theme.Header.Width(width - m.theme.Header.GetHorizontalBorderSize())
	inner := width - m.theme.Header.GetHorizontalFrameSize()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.HeaderTitle.Render(appTitle),
		m.theme.HeaderSubtitle.Render(appSubtitle),
	)
	status := m.theme.MarketOpen.Render(marketOpen)

	gap := inner - lipgloss.Width(left) - lipgloss.Width(status)
	if gap < 1 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, left, status))
	}
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), status))
}

// renderHelp draws the key help line.
func (m *Model) renderHelp() string {
	return m.help.View(newHelpKeys(m.keys, m.dashboard.Keys(), m.chat.Keys()))
}

// clipStocks limits the stacked stock pane to its share of the height.
func (m *Model) clipStocks(view string) string {
	_, height := m.size()
	maxHeight := (height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderHelp())) * 2 / 5
	if maxHeight < 1 {
		return view
	}
	return lipgloss.NewStyle().MaxHeight(maxHeight).Render(view)
}
