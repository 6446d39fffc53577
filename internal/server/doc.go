// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides a local demo of the financial insights backend.
//
// It serves the same wire format as the hosted API so the TUI can be run and
// tested without network access to it:
//
//   - GET  /               - Health check
//   - GET  /stocks         - Mock stock quotes (figures as JSON numbers)
//   - POST /chat           - Canned analysis built from the quote snapshot
//   - GET  /market-summary - One-line market summary
//   - GET  /stats          - Request counters
//
// # Middleware
//
//   - Panic recovery
//   - Request logging through zap
//   - CORS for the configured origin
//   - Per-IP rate limiting (golang.org/x/time/rate)
//
// # Usage
//
//	srv := server.New(server.Options{Addr: "127.0.0.1:8000", Logger: logger})
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
