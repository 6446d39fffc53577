// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for finsight.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Backend base URL shared by the stock and chat endpoints
//   - UIConfig: Theme, skeleton rows, summary line, quick questions
//   - LogConfig: Log file and level
//   - ServerConfig: Demo backend address, CORS origin, rate limit
//   - Watcher: fsnotify-based live reload
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (FINSIGHT_*)
//   - .env in the working directory
//   - ~/.finsight/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.LoadFromPath(path)
//	if err != nil {
//	    return err
//	}
//
// Watch for edits:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
//	    program.Send(app.ConfigReloadedMsg{Config: cfg, Err: err})
//	})
//	go w.Run(ctx)
package config
