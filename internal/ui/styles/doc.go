// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the finsight TUI.

All colors use Lip Gloss AdaptiveColor so one palette serves light and dark
terminals. The theme mode (dark, light, auto) from the config decides which
half of each pair is used.

# Color System (colors.go)

  - Purple - Focused pane border, assistant accents
  - Cyan - Title, quick question keys
  - Gain - Positive change, market open indicator
  - Loss - Zero or negative change, error banner
  - Amber - Data unavailable rows

# Theme (theme.go)

Theme groups the lipgloss styles used by the dashboard and chat panes:

	theme := styles.NewTheme(cfg.UI.Theme)
	change := theme.ChangeStyle(row.Positive).Render(row.Change)

# Animations (animations.go)

SpinnerConfig definitions convert to bubbles spinners for the typing
indicator and refresh status, and RenderSkeletonBar draws loading rows.
*/
package styles
