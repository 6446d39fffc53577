// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the AI assistant pane of the finsight TUI.

The pane renders a model.Conversation as message bubbles in a scrollable
viewport, with a multi-line textarea for the draft and a row of quick
question shortcuts.

# Request Flow

Enter (or ctrl+s) submits the draft. The conversation appends the user
message, clears the draft and marks a request pending; the pane returns a
command that performs exactly one POST /chat through its Sender. The
outcome comes back as a ReplyMsg and is resolved against the in-flight
request ID. Replies for any other ID are dropped.

While a request is pending the input is disabled and a typing indicator is
shown at the bottom of the transcript. A failed request produces the
fallback assistant message instead of surfacing the error.

# Keys

  - Enter, ctrl+s: send
  - alt+enter, ctrl+j: insert a line break
  - F1-F3, alt+1-3: fill the draft with a quick question
  - PgUp/PgDn: scroll the transcript

Assistant replies are rendered as markdown with glamour.
*/
package chat
