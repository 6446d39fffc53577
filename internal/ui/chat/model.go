// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/model"
	"github.com/jeranaias/finsight-tui/internal/ui/styles"
)

const (
	placeholder = "Ask about any stock or market trend..."

	inputHeight  = 3
	headerHeight = 2
	chromeHeight = headerHeight + 1 + 1 + inputHeight + 1 // header, context, quick row, input, border
	minViewport  = 3
)

// Options configure the chat pane.
type Options struct {
	// Context bounds every chat request; cancelled when the program exits.
	Context        context.Context
	QuickQuestions []QuickQuestion
	Logger         *zap.Logger
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat pane. The conversation is the single owner of message
// history and the pending flag; the pane renders it and turns key presses
// into UpdateDraft, QuickFill, and Submit calls.
type Model struct {
	ctx    context.Context
	conv   *model.Conversation
	client Sender
	theme  *styles.Theme
	keys   KeyMap
	logger *zap.Logger

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	markdown *glamour.TermRenderer

	quick   []QuickQuestion
	symbols []string

	width     int
	height    int
	focused   bool
	lastCount int
}

// New creates the chat pane for conv, sending requests through client.
func New(conv *model.Conversation, client Sender, theme *styles.Theme, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.QuickQuestions) == 0 {
		opts.QuickQuestions = DefaultQuickQuestions
	}

	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = keys.Newline

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Spinner()
	sp.Style = theme.Typing

	m := Model{
		ctx:      opts.Context,
		conv:     conv,
		client:   client,
		theme:    theme,
		keys:     keys,
		logger:   opts.Logger,
		textarea: ta,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		quick:    append([]QuickQuestion(nil), opts.QuickQuestions...),
	}
	m.textarea.SetValue(conv.Draft())
	m.SetSize(80, 24)
	return m
}

// Init is a no-op; the greeting is already in the conversation.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// SIZE AND FOCUS
// =============================================================================

// SetSize lays out the viewport and input within the pane's outer size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inner := width - m.theme.Pane.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	vpHeight := height - m.theme.Pane.GetVerticalFrameSize() - chromeHeight
	if vpHeight < minViewport {
		vpHeight = minViewport
	}

	m.textarea.SetWidth(inner)
	m.viewport.Width = inner
	m.viewport.Height = vpHeight
	m.markdown = newMarkdownRenderer(m.theme, markdownWidth(inner))
	m.refreshViewport()
}

// Focus gives the pane keyboard focus. The input only takes focus while no
// request is pending.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	if m.conv.Pending() {
		return nil
	}
	return m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.textarea.Blur()
}

// Focused reports whether the pane has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// SetSymbols updates the stock context line.
func (m *Model) SetSymbols(symbols []string) {
	m.symbols = append([]string(nil), symbols...)
}

// SetQuickQuestions replaces the shortcuts after a config reload.
func (m *Model) SetQuickQuestions(q []QuickQuestion) {
	if len(q) == 0 {
		q = DefaultQuickQuestions
	}
	m.quick = append([]QuickQuestion(nil), q...)
}

// SetTheme swaps the theme after a config reload.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.Typing
	m.SetSize(m.width, m.height)
}

// Conversation exposes the underlying conversation.
func (m Model) Conversation() *model.Conversation { return m.conv }

// Keys returns the pane's key map for the help line.
func (m Model) Keys() KeyMap { return m.keys }

// QuickQuestions returns the active shortcuts.
func (m Model) QuickQuestions() []QuickQuestion {
	return append([]QuickQuestion(nil), m.quick...)
}

// newMarkdownRenderer builds a glamour renderer for assistant replies, or nil
// when glamour cannot be initialised.
func newMarkdownRenderer(theme *styles.Theme, width int) *glamour.TermRenderer {
	style := "dark"
	if !theme.IsDark {
		style = "light"
	}
	if theme.ColorProfile == termenv.Ascii {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
