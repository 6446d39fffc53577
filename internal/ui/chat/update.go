// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/api"
)

// Update handles key presses, replies, and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case QuickQuestionMsg:
		return m.quickFill(msg.Index)

	case spinner.TickMsg:
		if !m.conv.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport()
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press while the pane is focused.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Send):
		return m.submit()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	if i := m.keys.QuickIndex(msg); i >= 0 {
		return m.quickFill(i)
	}

	// The input is disabled while a reply is pending.
	if m.conv.Pending() {
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.conv.UpdateDraft(m.textarea.Value())
	return m, cmd
}

// previewLength bounds the question text copied into failure logs.
const previewLength = 60

// submit sends the draft if the conversation accepts it.
func (m Model) submit() (Model, tea.Cmd) {
	m.conv.UpdateDraft(m.textarea.Value())

	req, ok := m.conv.Submit()
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.refreshViewport()

	m.logger.Info("chat request sent",
		zap.String("request_id", req.ID),
		zap.Int("length", len(req.Text)))

	return m, tea.Batch(sendCmd(m.ctx, m.client, req), m.spinner.Tick)
}

// handleReply resolves the outstanding request.
func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	reply, ok := m.conv.Resolve(msg.RequestID, msg.Text, msg.Err)
	if !ok {
		m.logger.Warn("dropping stale chat reply", zap.String("request_id", msg.RequestID))
		return m, nil
	}

	if msg.Err != nil {
		question, _ := m.conv.LastUserMessage()
		m.logger.Warn("chat request failed, showing fallback",
			zap.String("request_id", msg.RequestID),
			zap.String("question", question.Preview(previewLength)),
			zap.String("category", api.Category(msg.Err).String()),
			zap.Duration("elapsed", msg.Elapsed),
			zap.Error(msg.Err))
	} else {
		m.logger.Info("chat reply received",
			zap.String("request_id", msg.RequestID),
			zap.String("message_id", reply.ID),
			zap.Duration("elapsed", msg.Elapsed))
	}

	m.refreshViewport()

	var cmd tea.Cmd
	if m.focused {
		cmd = m.textarea.Focus()
	}
	return m, cmd
}

// quickFill puts a canned question into the draft and focuses the input.
func (m Model) quickFill(index int) (Model, tea.Cmd) {
	if index < 0 || index >= len(m.quick) {
		return m, nil
	}
	q := m.quick[index].Question
	m.conv.QuickFill(q)
	m.textarea.SetValue(q)

	if m.conv.Pending() {
		return m, nil
	}
	m.focused = true
	return m, m.textarea.Focus()
}
