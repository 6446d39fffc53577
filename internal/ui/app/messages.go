// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/jeranaias/finsight-tui/internal/config"

// ConfigReloadedMsg is sent by the config watcher after the file changes.
// Err is set when the new file failed to load; the running config is kept.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
