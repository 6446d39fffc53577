// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the chat conversation state machine.
//
// # Key Types
//
//   - Conversation: append-only message log, pending flag, and draft text
//   - Message: immutable message with role, text, timestamp, and ordered ID
//   - Request: the single outbound call produced by a successful Submit
//   - Role: message role enumeration (user, assistant)
//
// # Lifecycle
//
// A conversation starts with one assistant Greeting. Each accepted Submit
// appends the user message and goes pending; the matching Resolve appends
// exactly one assistant message (the reply, or FallbackReply on failure) and
// clears pending:
//
//	conv := model.NewConversation()
//	conv.UpdateDraft("How is AAPL doing?")
//	req, ok := conv.Submit()
//	if ok {
//	    reply, err := client.SendChat(ctx, req.Text)
//	    conv.Resolve(req.ID, reply, err)
//	}
package model
