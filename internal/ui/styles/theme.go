// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Mode is the configured theme name: dark, light, or auto
	Mode string

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	MarketOpen     lipgloss.Style

	// ==========================================================================
	// PANE STYLES
	// ==========================================================================

	Pane         lipgloss.Style
	PaneFocused  lipgloss.Style
	PaneTitle    lipgloss.Style
	PaneSubtitle lipgloss.Style

	// ==========================================================================
	// STOCK ROW STYLES
	// ==========================================================================

	StockSymbol  lipgloss.Style
	StockCompany lipgloss.Style
	StockPrice   lipgloss.Style
	Gain         lipgloss.Style
	Loss         lipgloss.Style
	Unavailable  lipgloss.Style
	SkeletonBar  lipgloss.Style
	ErrorBanner  lipgloss.Style
	Summary      lipgloss.Style
	StatusLine   lipgloss.Style

	// ==========================================================================
	// CHAT STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	MessageMeta     lipgloss.Style
	Typing          lipgloss.Style
	ContextLine     lipgloss.Style
	QuickKey        lipgloss.Style
	QuickLabel      lipgloss.Style
	QuickDisabled   lipgloss.Style
	InputContainer  lipgloss.Style
	InputDisabled   lipgloss.Style

	// ==========================================================================
	// HELP STYLES
	// ==========================================================================

	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. mode "dark" or
// "light" forces the background; anything else detects it.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	mode = strings.ToLower(mode)
	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		mode = "auto"
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		Mode:         mode,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.MarketOpen = lipgloss.NewStyle().
		Foreground(Gain).
		Bold(true)

	// Panes
	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PaneFocused = t.Pane.
		BorderForeground(Purple)

	t.PaneTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.PaneSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Stock rows
	t.StockSymbol = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.StockCompany = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StockPrice = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.Gain = lipgloss.NewStyle().
		Foreground(Gain)

	t.Loss = lipgloss.NewStyle().
		Foreground(Loss)

	t.Unavailable = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.SkeletonBar = lipgloss.NewStyle().
		Foreground(Skeleton)

	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(Loss).
		Background(LossBg).
		Bold(true).
		Padding(0, 1)

	t.Summary = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusLine = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Chat
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.MessageMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Typing = lipgloss.NewStyle().
		Foreground(Purple).
		Italic(true)

	t.ContextLine = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.QuickKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.QuickLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.QuickDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Faint(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputDisabled = t.InputContainer.
		Foreground(TextMuted)

	// Help
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, panes stack
	LayoutMedium                   // 60-100 columns, company column hidden
	LayoutWide                     // > 100 columns
)

// ChangeStyle picks the gain or loss style for a row.
func (t *Theme) ChangeStyle(positive bool) lipgloss.Style {
	if positive {
		return t.Gain
	}
	return t.Loss
}
