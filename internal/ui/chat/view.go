// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/finsight-tui/internal/model"
	"github.com/jeranaias/finsight-tui/internal/util"
)

const (
	title    = "AI Assistant"
	subtitle = "Ask me about any stock"

	typingLabel = "Assistant is typing"
	timeFormat  = "15:04"

	markdownMargin = 4
)

// View renders the pane.
func (m Model) View() string {
	inner := m.viewport.Width

	sections := []string{
		m.theme.PaneTitle.Render(title),
		m.theme.PaneSubtitle.Render(subtitle),
		m.renderContextLine(inner),
		m.viewport.View(),
		m.renderQuickQuestions(inner),
		m.renderInput(),
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

// refreshViewport re-renders the transcript and scrolls to the newest
// message whenever the message count grows.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())

	if n := m.conv.Len(); n > m.lastCount {
		m.lastCount = n
		m.viewport.GotoBottom()
	} else if m.conv.Pending() && m.viewport.AtBottom() {
		m.viewport.GotoBottom()
	}
}

// renderTranscript renders every message oldest first, then the typing
// indicator while a reply is pending.
func (m Model) renderTranscript() string {
	width := m.viewport.Width
	var b strings.Builder

	for i, msg := range m.conv.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg, width))
		b.WriteString("\n")
	}

	if m.conv.Pending() {
		b.WriteString("\n")
		b.WriteString(m.theme.Typing.Render(typingLabel + " " + m.spinner.View()))
	}
	return b.String()
}

// renderMessage draws one message bubble with its meta line.
func (m Model) renderMessage(msg model.Message, width int) string {
	meta := m.theme.MessageMeta.Render(
		fmt.Sprintf("%s  %s", msg.Role.DisplayName(), msg.Timestamp.Format(timeFormat)))

	textWidth := bubbleTextWidth(width)
	style := m.theme.AssistantBubble
	body := msg.Text
	if msg.IsUser() {
		style = m.theme.UserBubble
	} else {
		body = m.renderMarkdown(body)
	}

	bubble := style.Width(textWidth + style.GetHorizontalPadding()).Render(body)
	block := lipgloss.JoinVertical(lipgloss.Left, meta, bubble)

	if msg.IsUser() {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}

// renderMarkdown renders assistant text through glamour, falling back to the
// raw text if rendering fails.
func (m Model) renderMarkdown(text string) string {
	if m.markdown == nil || strings.TrimSpace(text) == "" {
		return text
	}
	out, err := m.markdown.Render(text)
	if err != nil {
		return text
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// renderContextLine lists the symbols currently on the dashboard.
func (m Model) renderContextLine(width int) string {
	if len(m.symbols) == 0 {
		return m.theme.ContextLine.Render("Watching: -")
	}
	line := "Watching: " + strings.Join(m.symbols, " ")
	return m.theme.ContextLine.Render(util.TruncateWidth(line, width))
}

// quickStyles returns the key and label styles for the shortcut row. The row
// is dimmed while a reply is pending since nothing can be sent until then.
func (m Model) quickStyles() (lipgloss.Style, lipgloss.Style) {
	if m.conv.Pending() {
		return m.theme.QuickDisabled, m.theme.QuickDisabled
	}
	return m.theme.QuickKey, m.theme.QuickLabel
}

// renderQuickQuestions draws the shortcut row.
func (m Model) renderQuickQuestions(width int) string {
	keyStyle, labelStyle := m.quickStyles()
	parts := make([]string, 0, len(m.quick))
	for i, q := range m.quick {
		if i >= MaxQuickQuestions {
			break
		}
		keyLabel := fmt.Sprintf("[F%d]", i+1)
		parts = append(parts, keyStyle.Render(keyLabel)+" "+labelStyle.Render(q.Label))
	}
	return util.TruncateWidth(strings.Join(parts, "  "), width)
}

// renderInput draws the textarea, dimmed while a reply is pending.
func (m Model) renderInput() string {
	if m.conv.Pending() {
		return m.theme.InputDisabled.Render(m.textarea.View())
	}
	return m.theme.InputContainer.Render(m.textarea.View())
}

// bubbleTextWidth is the wrap width for message text inside a bubble.
func bubbleTextWidth(inner int) int {
	w := inner*4/5 - 4
	if w < 10 {
		w = 10
	}
	return w
}

// markdownWidth leaves room for glamour's document margin inside a bubble.
func markdownWidth(inner int) int {
	w := bubbleTextWidth(inner) - markdownMargin
	if w < 10 {
		w = 10
	}
	return w
}
