// finsight - A terminal dashboard for stock prices and an AI market assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jeranaias/finsight-tui/internal/api"
	"github.com/jeranaias/finsight-tui/internal/config"
	"github.com/jeranaias/finsight-tui/internal/logging"
	"github.com/jeranaias/finsight-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	configPath string
	baseURL    string
	theme      string
	logFile    string
	verbose    bool
	noWatch    bool
)

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Stock dashboard and AI market assistant in your terminal",
	Long: `finsight shows a live watchlist of stock prices next to a chat with an
AI market assistant. Prices come from GET /stocks and answers from POST /chat
on the configured backend.

Keys:
  Tab / Shift+Tab   switch pane
  Ctrl+R            refresh prices
  F1-F3             quick questions
  Enter / Ctrl+S    send message
  F12               toggle full help
  Ctrl+C            quit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "finsight %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.finsight/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "backend base URL")
	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme: dark, light or auto")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file when it changes")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoServerCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONFIG LOADING
// =============================================================================

// resolveConfigPath returns --config or the default config location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return config.ExpandHome(configPath), nil
	}
	return config.ConfigPath()
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (*config.Config, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, "", err
	}
	if err := applyFlags(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyFlags layers command-line flags over cfg. Reloaded configs go through
// here too so flags keep winning over the file.
func applyFlags(cfg *config.Config) error {
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if theme != "" {
		cfg.UI.Theme = theme
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	cfg.SetDefaults()
	return cfg.Validate()
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("finsight needs an interactive terminal; use 'finsight demo-server' for headless use")
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.New(cfg.Log, logging.Options{Verbose: verbose})
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting finsight",
		zap.String("version", Version),
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("config", path))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := api.NewClient(cfg.API.BaseURL, logger.Named("api"))
	m := app.New(client, client, app.Options{
		Context: ctx,
		Config:  cfg,
		Logger:  logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if !noWatch {
		startConfigWatcher(ctx, path, p, logger)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	logger.Info("finsight exited")
	return nil
}

// startConfigWatcher forwards config file changes to the running program.
// A watcher that cannot start is logged and skipped.
func startConfigWatcher(ctx context.Context, path string, p *tea.Program, logger *zap.Logger) {
	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
		if err == nil {
			err = applyFlags(cfg)
		}
		if err != nil {
			cfg = nil
		}
		p.Send(app.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		logger.Warn("config watcher disabled", zap.String("path", path), zap.Error(err))
		return
	}

	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warn("config watcher stopped", zap.Error(err))
		}
	}()
}
