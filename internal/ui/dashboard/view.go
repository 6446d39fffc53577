// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/finsight-tui/internal/stocks"
	"github.com/jeranaias/finsight-tui/internal/ui/styles"
	"github.com/jeranaias/finsight-tui/internal/util"
)

const (
	refreshLabel = "Refresh Prices"
	loadingLabel = "Loading..."

	symbolWidth  = 6
	priceWidth   = 12
	changeWidth  = 20
	minCompany   = 10
	defaultWidth = 72
)

// View renders the pane.
func (m Model) View() string {
	state := m.controller.State()
	inner := m.innerWidth()

	var sections []string
	sections = append(sections, m.renderStatusLine(state))

	if state.HasError() {
		banner := styles.StatusIndicators.Error + " Error: " + state.Err
		bannerWidth := inner - m.theme.ErrorBanner.GetHorizontalFrameSize()
		sections = append(sections, m.theme.ErrorBanner.Render(util.TruncateWidth(banner, bannerWidth)))
	}

	sections = append(sections, "")
	for i, row := range stocks.RenderRows(state, m.skeletonRows) {
		sections = append(sections, m.renderRow(row, i, inner))
	}

	if m.showSummary && !state.Initial() {
		sections = append(sections, "", m.theme.Summary.Render(
			util.TruncateWidth(stocks.Summarize(state.Records).Text(), inner)))
	}

	pane := m.theme.Pane
	if m.focused {
		pane = m.theme.PaneFocused
	}
	if m.width > 0 {
		pane = pane.Width(m.width - pane.GetHorizontalBorderSize())
	}
	return pane.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderStatusLine draws the refresh control.
func (m Model) renderStatusLine(state stocks.ListState) string {
	if !m.controller.CanRefresh() {
		return m.spinner.View() + " " + m.theme.StatusLine.Render(loadingLabel)
	}
	return m.theme.ShortcutKey.Render("[r]") + " " + m.theme.StatusLine.Render(refreshLabel)
}

// renderRow draws one stock row or placeholder.
func (m Model) renderRow(row stocks.Row, index, width int) string {
	if row.Placeholder {
		return m.theme.SkeletonBar.Render(styles.RenderSkeletonBar(width, index))
	}

	suffix := ""
	if row.Unavailable {
		suffix = " " + styles.StatusIndicators.Unavailable + " " + stocks.UnavailableText
	}

	showCompany := m.theme.GetLayoutMode() == styles.LayoutWide || m.width == 0
	companyWidth := width - symbolWidth - priceWidth - changeWidth - 3 - util.StringWidth(suffix)
	if companyWidth < minCompany {
		showCompany = false
	}

	indicator := styles.StatusIndicators.Down
	if row.Positive {
		indicator = styles.StatusIndicators.Up
	}
	changeStyle := m.theme.ChangeStyle(row.Positive)

	parts := []string{
		m.theme.StockSymbol.Render(util.PadRight(row.Symbol, symbolWidth)),
	}
	if showCompany {
		parts = append(parts, m.theme.StockCompany.Render(
			util.PadRight(util.TruncateWidth(row.Company, companyWidth), companyWidth)))
	}
	parts = append(parts,
		m.theme.StockPrice.Render(util.PadLeft(row.Price, priceWidth)),
		changeStyle.Render(util.PadLeft(indicator+" "+row.Change, changeWidth)),
	)

	line := strings.Join(parts, " ")
	if suffix != "" {
		line += m.theme.Unavailable.Render(suffix)
	}
	return line
}

func (m Model) innerWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	w := m.width - m.theme.Pane.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}
