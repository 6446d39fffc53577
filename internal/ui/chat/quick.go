// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/jeranaias/finsight-tui/internal/util"
)

// MaxQuickQuestions is the number of shortcut slots.
const MaxQuickQuestions = 3

const quickLabelWidth = 18

// QuickQuestion is a canned prompt with a short button label.
type QuickQuestion struct {
	Label    string
	Question string
}

// DefaultQuickQuestions are the built-in shortcuts.
var DefaultQuickQuestions = []QuickQuestion{
	{Label: "Market outlook?", Question: "What's your market outlook?"},
	{Label: "Best buy today?", Question: "Which stock should I buy today?"},
	{Label: "Risk assessment", Question: "What are the current market risks?"},
}

// QuickQuestionsFrom builds shortcuts from configured question text. Known
// questions keep their built-in labels; others are labelled by truncation.
// An empty list yields the defaults.
func QuickQuestionsFrom(questions []string) []QuickQuestion {
	if len(questions) == 0 {
		return append([]QuickQuestion(nil), DefaultQuickQuestions...)
	}

	known := make(map[string]string, len(DefaultQuickQuestions))
	for _, q := range DefaultQuickQuestions {
		known[q.Question] = q.Label
	}

	var out []QuickQuestion
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		label, ok := known[q]
		if !ok {
			label = util.TruncateWidth(q, quickLabelWidth)
		}
		out = append(out, QuickQuestion{Label: label, Question: q})
		if len(out) == MaxQuickQuestions {
			break
		}
	}
	if len(out) == 0 {
		return append([]QuickQuestion(nil), DefaultQuickQuestions...)
	}
	return out
}
