// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/finsight-tui/internal/config"
	"github.com/jeranaias/finsight-tui/internal/logging"
	"github.com/jeranaias/finsight-tui/internal/server"
)

const shutdownTimeout = 5 * time.Second

var (
	serverAddr  string
	forceConfig bool
)

var demoServerCmd = &cobra.Command{
	Use:   "demo-server",
	Short: "Run a local backend serving mock quotes and canned answers",
	Long: `Starts an HTTP server that speaks the same API as the hosted backend:

  GET  /                health check
  GET  /stocks          watchlist quotes
  POST /chat            assistant answer for {"message": "..."}
  GET  /market-summary  one-line market summary
  GET  /stats           request counters

Point the TUI at it with --base-url http://127.0.0.1:8000.`,
	Args: cobra.NoArgs,
	RunE: runDemoServer,
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE:  runInitConfig,
}

func init() {
	demoServerCmd.Flags().StringVar(&serverAddr, "addr", "", "listen address (default from config, 127.0.0.1:8000)")
	initConfigCmd.Flags().BoolVarP(&forceConfig, "force", "f", false, "overwrite an existing config file")
}

// =============================================================================
// DEMO SERVER
// =============================================================================

func runDemoServer(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if serverAddr != "" {
		cfg.Server.Addr = serverAddr
	}

	logger, cleanup, err := logging.New(cfg.Log, logging.Options{Console: true, Verbose: verbose})
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(server.Options{
		Addr:          cfg.Server.Addr,
		AllowedOrigin: cfg.Server.AllowedOrigin,
		RatePerSecond: cfg.Server.RatePerSecond,
		Burst:         cfg.Server.Burst,
		Logger:        logger.Named("server"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("demo server: %w", err)
	}
	logger.Info("demo server stopped")
	return nil
}

// =============================================================================
// INIT CONFIG
// =============================================================================

func runInitConfig(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !forceConfig {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return nil
}
