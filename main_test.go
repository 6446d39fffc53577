// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/finsight-tui/internal/config"
)

// resetFlags clears the package-level flag values after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath, baseURL, theme, logFile = "", "", "", ""
		verbose, noWatch, forceConfig = false, false, false
		serverAddr = ""
	})
}

// =============================================================================
// FLAG OVERRIDE TESTS
// =============================================================================

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		theme   string
		wantURL string
		wantErr bool
	}{
		{"no flags keeps file values", "", "", "http://file.example", false},
		{"base url flag wins", "http://127.0.0.1:8000/", "", "http://127.0.0.1:8000", false},
		{"bad scheme rejected", "ftp://example.com", "", "", true},
		{"bad theme rejected", "", "neon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			baseURL, theme = tt.baseURL, tt.theme

			cfg := config.Default()
			cfg.API.BaseURL = "http://file.example"

			err := applyFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, cfg.API.BaseURL)
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	resetFlags(t)
	t.Setenv("FINSIGHT_BASE_URL", "")
	configPath = filepath.Join(t.TempDir(), "config.toml")

	cfg, path, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

func TestInitConfig(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "nested", "config.toml")

	var out bytes.Buffer
	initConfigCmd.SetOut(&out)
	require.NoError(t, runInitConfig(initConfigCmd, nil))
	assert.Contains(t, out.String(), configPath)

	cfg, err := config.LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Server.Addr, cfg.Server.Addr)

	require.Error(t, runInitConfig(initConfigCmd, nil), "refuses to overwrite")

	forceConfig = true
	require.NoError(t, os.WriteFile(configPath, []byte("garbage"), 0644))
	require.NoError(t, runInitConfig(initConfigCmd, nil))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "finsight "+Version)
}
