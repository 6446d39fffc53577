// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the root Bubble Tea model: the header, the stock pane,
// the chat pane, and the help line, plus global keys and live config reloads.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/config"
	"github.com/jeranaias/finsight-tui/internal/model"
	"github.com/jeranaias/finsight-tui/internal/stocks"
	"github.com/jeranaias/finsight-tui/internal/ui/chat"
	"github.com/jeranaias/finsight-tui/internal/ui/dashboard"
	"github.com/jeranaias/finsight-tui/internal/ui/styles"
)

// Pane identifies which pane has keyboard focus.
type Pane int

const (
	PaneStocks Pane = iota
	PaneChat
)

// String returns the pane name for logging.
func (p Pane) String() string {
	if p == PaneStocks {
		return "stocks"
	}
	return "chat"
}

// baseURLSetter is implemented by clients that can be repointed on reload.
type baseURLSetter interface {
	SetBaseURL(string)
}

// Options configure the root model.
type Options struct {
	// Context bounds every request; cancel it when the program exits.
	Context context.Context
	Config  *config.Config
	Logger  *zap.Logger
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root model. It owns both panes and routes messages to them.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	logger *zap.Logger

	fetcher stocks.Fetcher
	sender  chat.Sender

	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	dashboard dashboard.Model
	chat      chat.Model

	focus  Pane
	width  int
	height int
}

// New wires the stock pane to fetcher and the chat pane to sender.
func New(fetcher stocks.Fetcher, sender chat.Sender, opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	cfg := opts.Config
	theme := styles.NewTheme(cfg.UI.Theme)

	dash := dashboard.New(
		stocks.NewController(fetcher, opts.Logger.Named("stocks")),
		theme,
		dashboard.Options{
			Context:      opts.Context,
			SkeletonRows: cfg.UI.SkeletonRows,
			ShowSummary:  cfg.UI.SummaryEnabled(),
			Logger:       opts.Logger.Named("dashboard"),
		},
	)

	chatPane := chat.New(
		model.NewConversation(),
		sender,
		theme,
		chat.Options{
			Context:        opts.Context,
			QuickQuestions: chat.QuickQuestionsFrom(cfg.UI.QuickQuestions),
			Logger:         opts.Logger.Named("chat"),
		},
	)

	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc

	m := &Model{
		ctx:       opts.Context,
		cfg:       cfg,
		logger:    opts.Logger,
		fetcher:   fetcher,
		sender:    sender,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      h,
		dashboard: dash,
		chat:      chatPane,
		focus:     PaneChat,
	}
	m.layout()
	return m
}

// Init starts the first stock fetch and focuses the chat input.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashboard.Init(),
		m.chat.Init(),
		m.setFocus(PaneChat),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case dashboard.SnapshotMsg:
		symbols := make([]string, len(msg.Records))
		for i, r := range msg.Records {
			symbols[i] = r.Symbol
		}
		m.chat.SetSymbols(symbols)
		return m, nil

	case dashboard.RefreshMsg, dashboard.FetchResultMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case chat.ReplyMsg, chat.QuickQuestionMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	// Spinner ticks, mouse events and anything else go to both panes.
	var dashCmd, chatCmd tea.Cmd
	m.dashboard, dashCmd = m.dashboard.Update(msg)
	m.chat, chatCmd = m.chat.Update(msg)
	return m, tea.Batch(dashCmd, chatCmd)
}

// handleKeyPress processes global keys, then forwards to the focused pane.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Info("quit requested")
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPane), key.Matches(msg, m.keys.PrevPane):
		next := PaneStocks
		if m.focus == PaneStocks {
			next = PaneChat
		}
		return m, m.setFocus(next)

	case key.Matches(msg, m.keys.Refresh):
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(dashboard.RefreshMsg{})
		return m, cmd

	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	// Quick questions work from either pane and move focus to the chat.
	if i := m.chat.Keys().QuickIndex(msg); i >= 0 {
		focusCmd := m.setFocus(PaneChat)
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(chat.QuickQuestionMsg{Index: i})
		return m, tea.Batch(focusCmd, cmd)
	}

	var cmd tea.Cmd
	if m.focus == PaneStocks {
		m.dashboard, cmd = m.dashboard.Update(msg)
	} else {
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// setFocus moves keyboard focus to p.
func (m *Model) setFocus(p Pane) tea.Cmd {
	m.focus = p
	if p == PaneStocks {
		m.chat.Blur()
		m.dashboard.Focus()
		return nil
	}
	m.dashboard.Blur()
	return m.chat.Focus()
}

// applyConfig applies a reloaded config. Theme, quick questions and the
// summary toggle change immediately; a new base URL is used by the next
// refresh or submit.
func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed, keeping current settings", zap.Error(msg.Err))
		return
	}
	if msg.Config == nil {
		return
	}
	cfg := msg.Config

	if cfg.UI.Theme != m.cfg.UI.Theme {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.dashboard.SetTheme(m.theme)
		m.chat.SetTheme(m.theme)
		m.help.Styles.ShortKey = m.theme.ShortcutKey
		m.help.Styles.ShortDesc = m.theme.ShortcutDesc
		m.help.Styles.FullKey = m.theme.ShortcutKey
		m.help.Styles.FullDesc = m.theme.ShortcutDesc
	}

	m.chat.SetQuickQuestions(chat.QuickQuestionsFrom(cfg.UI.QuickQuestions))
	m.dashboard.SetShowSummary(cfg.UI.SummaryEnabled())

	if cfg.API.BaseURL != m.cfg.API.BaseURL {
		for _, c := range []any{m.fetcher, m.sender} {
			if s, ok := c.(baseURLSetter); ok {
				s.SetBaseURL(cfg.API.BaseURL)
			}
		}
	}

	m.cfg = cfg
	m.layout()
	m.logger.Info("config reloaded",
		zap.String("theme", cfg.UI.Theme),
		zap.String("base_url", cfg.API.BaseURL))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Focus returns the focused pane.
func (m *Model) Focus() Pane { return m.focus }

// Config returns the active config.
func (m *Model) Config() *config.Config { return m.cfg }

// Dashboard returns the stock pane.
func (m *Model) Dashboard() dashboard.Model { return m.dashboard }

// Chat returns the chat pane.
func (m *Model) Chat() chat.Model { return m.chat }
