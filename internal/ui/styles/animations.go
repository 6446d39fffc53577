// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// DotsSpinner - Three-dot typing indicator
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// LineSpinner - Refresh indicator in the stock status line
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Spinner converts the config into a bubbles spinner definition.
func (s SpinnerConfig) Spinner() spinner.Spinner {
	return spinner.Spinner{
		Frames: append([]string(nil), s.Frames...),
		FPS:    s.Duration(),
	}
}

// =============================================================================
// SKELETON PLACEHOLDERS
// =============================================================================

// SkeletonChar fills placeholder bars.
const SkeletonChar = "░"

// RenderSkeletonBar returns a placeholder bar of width cells. Alternate rows
// are shortened so the skeleton reads as a list rather than a block.
func RenderSkeletonBar(width, row int) string {
	if width <= 0 {
		return ""
	}
	if row%2 == 1 && width > 4 {
		width = width * 3 / 4
	}
	return strings.Repeat(SkeletonChar, width)
}
