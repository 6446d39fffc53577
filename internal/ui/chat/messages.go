// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/finsight-tui/internal/model"
)

// Sender posts one chat message and returns the reply text.
type Sender interface {
	SendChat(ctx context.Context, message string) (string, error)
}

// =============================================================================
// REQUEST MESSAGES
// =============================================================================

// ReplyMsg carries the outcome of one POST /chat back to the Update loop.
type ReplyMsg struct {
	RequestID string
	Text      string
	Err       error
	Elapsed   time.Duration
}

// QuickQuestionMsg fills the draft with a canned question.
type QuickQuestionMsg struct {
	Index int
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// sendCmd performs the single outbound call for req.
func sendCmd(ctx context.Context, client Sender, req model.Request) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		text, err := client.SendChat(ctx, req.Text)
		return ReplyMsg{
			RequestID: req.ID,
			Text:      text,
			Err:       err,
			Elapsed:   time.Since(start),
		}
	}
}
