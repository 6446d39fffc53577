// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard provides the stock list pane: refresh control, error
// banner, stock rows, and the market summary line.
package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/stocks"
	"github.com/jeranaias/finsight-tui/internal/ui/styles"
)

// Options configure the stock pane.
type Options struct {
	// Context bounds every fetch; cancelled when the program exits.
	Context context.Context
	// SkeletonRows is the placeholder count for the first load.
	SkeletonRows int
	// ShowSummary toggles the market summary line.
	ShowSummary bool
	Logger      *zap.Logger
}

// Model is the stock pane. The controller is the single owner of list state;
// the pane only triggers refreshes and renders.
type Model struct {
	ctx        context.Context
	controller *stocks.Controller
	theme      *styles.Theme
	keys       KeyMap
	spinner    spinner.Model
	logger     *zap.Logger

	skeletonRows int
	showSummary  bool

	width   int
	height  int
	focused bool
}

// New creates the stock pane around controller.
func New(controller *stocks.Controller, theme *styles.Theme, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SkeletonRows <= 0 {
		opts.SkeletonRows = stocks.SkeletonRowCount
	}

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Spinner()
	sp.Style = theme.StatusLine

	return Model{
		ctx:          opts.Context,
		controller:   controller,
		theme:        theme,
		keys:         DefaultKeyMap(),
		spinner:      sp,
		logger:       opts.Logger,
		skeletonRows: opts.SkeletonRows,
		showSummary:  opts.ShowSummary,
	}
}

// Init triggers the mount-time fetch.
func (m Model) Init() tea.Cmd {
	return Refresh()
}

// Update handles refresh requests, fetch results, and the refresh key.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return m.refresh()

	case FetchResultMsg:
		m.controller.Apply(msg.Result)
		if msg.Result.Err != nil {
			return m, nil
		}
		return m, snapshotCmd(m.controller.Records())

	case spinner.TickMsg:
		if !m.controller.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.focused && key.Matches(msg, m.keys.Refresh) {
			return m.refresh()
		}
	}
	return m, nil
}

// refresh starts a fetch unless one is already outstanding.
func (m Model) refresh() (Model, tea.Cmd) {
	ticket, ok := m.controller.Refresh()
	if !ok {
		m.logger.Debug("refresh ignored, fetch in flight")
		return m, nil
	}
	return m, tea.Batch(fetchCmd(m.ctx, m.controller, ticket), m.spinner.Tick)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SetSize sets the pane's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// SetShowSummary toggles the market summary line.
func (m *Model) SetShowSummary(show bool) { m.showSummary = show }

// SetTheme swaps the theme after a config reload.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.StatusLine
}

// State returns the controller's current list state.
func (m Model) State() stocks.ListState {
	return m.controller.State()
}

// Rows returns the display rows for the current state.
func (m Model) Rows() []stocks.Row {
	return stocks.RenderRows(m.controller.State(), m.skeletonRows)
}

// Keys returns the pane's key map for the help line.
func (m Model) Keys() KeyMap {
	return m.keys
}
