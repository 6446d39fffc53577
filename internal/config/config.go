// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for finsight.
//
// Configuration file location:
//   - ~/.finsight/config.toml (or the path given with --config)
//   - Built-in defaults when the file does not exist
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultBaseURL is the hosted financial insights backend.
const DefaultBaseURL = "https://llm-financial-insights-bot-production.up.railway.app"

// DefaultQuickQuestions are the canned chat shortcuts.
var DefaultQuickQuestions = []string{
	"What's your market outlook?",
	"Which stock should I buy today?",
	"What are the current market risks?",
}

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete finsight configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	// BaseURL is shared by GET /stocks and POST /chat.
	BaseURL string `toml:"base_url"`
}

// UIConfig contains dashboard presentation settings.
type UIConfig struct {
	// Theme is "dark", "light", or "auto"
	Theme string `toml:"theme"`
	// SkeletonRows is the placeholder row count during the first load
	SkeletonRows int `toml:"skeleton_rows"`
	// ShowSummary toggles the market summary line under the stock rows
	ShowSummary *bool `toml:"show_summary"`
	// QuickQuestions overrides the chat shortcuts (at most three are bound)
	QuickQuestions []string `toml:"quick_questions"`
}

// SummaryEnabled reports whether the market summary line is shown.
func (u UIConfig) SummaryEnabled() bool {
	return u.ShowSummary == nil || *u.ShowSummary
}

// LogConfig controls the file logger.
type LogConfig struct {
	// File is the log file path; "~" expands to the home directory
	File string `toml:"file"`
	// Level is debug, info, warn, or error
	Level string `toml:"level"`
}

// ServerConfig configures the local demo backend.
type ServerConfig struct {
	Addr          string  `toml:"addr"`
	AllowedOrigin string  `toml:"allowed_origin"`
	RatePerSecond float64 `toml:"rate_per_second"`
	Burst         int     `toml:"burst"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a new Config with default values.
func Default() *Config {
	show := true
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		UI: UIConfig{
			Theme:          "dark",
			SkeletonRows:   6,
			ShowSummary:    &show,
			QuickQuestions: append([]string(nil), DefaultQuickQuestions...),
		},
		Log: LogConfig{
			File:  "~/.finsight/finsight.log",
			Level: "info",
		},
		Server: ServerConfig{
			Addr:          "127.0.0.1:8000",
			AllowedOrigin: "*",
			RatePerSecond: 5,
			Burst:         10,
		},
	}
}

// =============================================================================
// CONFIG PATHS
// =============================================================================

// ConfigDir returns the finsight configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".finsight"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default path. A missing file is not an
// error; defaults and environment overrides still apply.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from path with full validation. A missing
// file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := LoadTOML(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path, creating the parent directory.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# finsight configuration file")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: err.Error()})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.SkeletonRows < 1 || c.UI.SkeletonRows > 50 {
		errs = append(errs, ValidationError{
			Field:   "ui.skeleton_rows",
			Message: fmt.Sprintf("must be between 1 and 50, got %d", c.UI.SkeletonRows),
		})
	}

	for i, q := range c.UI.QuickQuestions {
		if strings.TrimSpace(q) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("ui.quick_questions[%d]", i),
				Message: "must not be blank",
			})
		}
	}

	if !ValidLogLevel(c.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Log.Level, strings.Join(LogLevels, ", ")),
		})
	}

	if c.Server.RatePerSecond <= 0 {
		errs = append(errs, ValidationError{Field: "server.rate_per_second", Message: "must be positive"})
	}
	if c.Server.Burst < 1 {
		errs = append(errs, ValidationError{Field: "server.burst", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LogLevels are the accepted log.level names, matched case-insensitively.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// ValidLogLevel reports whether name is one of LogLevels.
func ValidLogLevel(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, level := range LogLevels {
		if name == level {
			return true
		}
	}
	return false
}

// ValidateBaseURL accepts absolute http and https URLs only.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if strings.TrimSpace(c.API.BaseURL) == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SkeletonRows == 0 {
		c.UI.SkeletonRows = defaults.UI.SkeletonRows
	}
	if c.UI.ShowSummary == nil {
		c.UI.ShowSummary = defaults.UI.ShowSummary
	}
	if len(c.UI.QuickQuestions) == 0 {
		c.UI.QuickQuestions = defaults.UI.QuickQuestions
	}

	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = defaults.Server.AllowedOrigin
	}
	if c.Server.RatePerSecond == 0 {
		c.Server.RatePerSecond = defaults.Server.RatePerSecond
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = defaults.Server.Burst
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - FINSIGHT_BASE_URL: overrides api.base_url
//   - FINSIGHT_THEME: overrides ui.theme
//   - FINSIGHT_LOG_FILE: overrides log.file
//   - FINSIGHT_LOG_LEVEL: overrides log.level
//   - FINSIGHT_SERVER_ADDR: overrides server.addr
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FINSIGHT_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FINSIGHT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("FINSIGHT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("FINSIGHT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FINSIGHT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.UI.QuickQuestions = append([]string(nil), c.UI.QuickQuestions...)
	if c.UI.ShowSummary != nil {
		show := *c.UI.ShowSummary
		clone.UI.ShowSummary = &show
	}
	return &clone
}
