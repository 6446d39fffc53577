// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/jeranaias/finsight-tui/internal/util"
)

// Greeting is the assistant message every conversation starts with.
const Greeting = "Hello! I can help you analyze any of these stocks or answer questions about the market. What would you like to know?"

// FallbackReply replaces the assistant reply whenever a chat request fails.
// Chat failures are never shown as errors; the conversation just continues.
const FallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

// =============================================================================
// REQUEST TYPE
// =============================================================================

// Request describes the one outbound chat call produced by a successful Submit.
// ID matches the user message that triggered it and is used to pair the reply.
type Request struct {
	ID   string
	Text string
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the chat state machine: an append-only message log, the
// pending flag for the single in-flight request, and the user's draft.
//
// A Conversation has a single writer (the chat view's Update loop) and is not
// safe for concurrent use.
type Conversation struct {
	messages  []Message
	draft     string
	pending   bool
	inflight  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConversation creates a conversation seeded with the assistant greeting.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		messages:  []Message{NewAssistantMessage(Greeting)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// =============================================================================
// DRAFT MANAGEMENT
// =============================================================================

// UpdateDraft replaces the draft text. It has no other effect.
func (c *Conversation) UpdateDraft(text string) {
	c.draft = text
}

// QuickFill loads a canned question into the draft without submitting it.
func (c *Conversation) QuickFill(question string) {
	c.UpdateDraft(question)
}

// Draft returns the current draft text.
func (c *Conversation) Draft() string {
	return c.draft
}

// CanSubmit reports whether Submit would accept the current draft.
func (c *Conversation) CanSubmit() bool {
	return !c.pending && !util.IsBlank(c.draft)
}

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================

// Submit appends the draft as a user message, clears the draft, and marks the
// conversation pending. The returned Request must be sent exactly once.
//
// Submit is a no-op returning false when the draft is blank or a request is
// already in flight. The draft is stored as typed; only the emptiness check
// looks at the trimmed text.
func (c *Conversation) Submit() (Request, bool) {
	if !c.CanSubmit() {
		return Request{}, false
	}

	msg := NewUserMessage(c.draft)
	c.append(msg)
	c.draft = ""
	c.pending = true
	c.inflight = msg.ID

	return Request{ID: msg.ID, Text: msg.Text}, true
}

// Resolve completes the in-flight request. On success the reply becomes the
// assistant message; on any error FallbackReply is appended instead. Either
// way exactly one assistant message is added and pending is cleared.
//
// Results for a request ID other than the in-flight one are dropped and
// Resolve returns false.
func (c *Conversation) Resolve(requestID string, reply string, err error) (Message, bool) {
	if !c.pending || requestID != c.inflight {
		return Message{}, false
	}

	text := reply
	if err != nil {
		text = FallbackReply
	}

	msg := NewAssistantMessage(text)
	c.append(msg)
	c.pending = false
	c.inflight = ""
	return msg, true
}

// Pending reports whether a chat request is outstanding.
func (c *Conversation) Pending() bool {
	return c.pending
}

// InFlight returns the ID of the outstanding request, or "" when idle.
func (c *Conversation) InFlight() string {
	return c.inflight
}

// =============================================================================
// MESSAGE ACCESS
// =============================================================================

// Messages returns a copy of the message log, oldest first.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastUserMessage returns the most recent user message.
func (c *Conversation) LastUserMessage() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleUser {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

func (c *Conversation) append(msg Message) {
	c.messages = append(c.messages, msg)
	c.UpdatedAt = time.Now()
}
