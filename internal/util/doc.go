// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides string helpers shared by the TUI packages.
//
// Widths are measured in terminal cells with go-runewidth so that stock
// tables and chat bubbles line up even with wide characters:
//
//	name := util.PadRight(record.Company, 24)
//	preview := util.TruncateRunes(msg.Text, 50)
package util
