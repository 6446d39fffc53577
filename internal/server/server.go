// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/util"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is where the demo backend listens.
	DefaultAddr = "127.0.0.1:8000"

	// MaxRequestBodySize caps a POST /chat body (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// HealthMessage is the GET / response text.
	HealthMessage = "Financial Insights Bot API is running"

	// Version is the demo server version.
	Version = "1.0.0"
)

// ============================================================================
// SERVER STATS
// ============================================================================

// Stats tracks request counts.
type Stats struct {
	TotalRequests   int64     `json:"total_requests"`
	StockRequests   int64     `json:"stock_requests"`
	ChatRequests    int64     `json:"chat_requests"`
	SummaryRequests int64     `json:"summary_requests"`
	StartTime       time.Time `json:"start_time"`
}

type counters struct {
	total   atomic.Int64
	stocks  atomic.Int64
	chat    atomic.Int64
	summary atomic.Int64
	start   time.Time
}

func (c *counters) snapshot() Stats {
	return Stats{
		TotalRequests:   c.total.Load(),
		StockRequests:   c.stocks.Load(),
		ChatRequests:    c.chat.Load(),
		SummaryRequests: c.summary.Load(),
		StartTime:       c.start,
	}
}

// ============================================================================
// SERVER
// ============================================================================

// Options configure the demo server.
type Options struct {
	Addr string
	// AllowedOrigin is the CORS origin; "*" allows any.
	AllowedOrigin string
	// RatePerSecond and Burst bound requests per client IP. Zero disables
	// rate limiting.
	RatePerSecond float64
	Burst         int
	// Quotes replaces the mock watchlist.
	Quotes []Quote
	Logger *zap.Logger
}

// Server is the demo HTTP backend.
type Server struct {
	addr    string
	router  chi.Router
	server  *http.Server
	logger  *zap.Logger
	limiter *RateLimiter
	stats   *counters

	mu     sync.RWMutex
	quotes []Quote
	closed bool
}

// New creates a server with routes and middleware installed.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Quotes == nil {
		opts.Quotes = MockQuotes()
	}

	s := &Server{
		addr:   opts.Addr,
		logger: opts.Logger,
		stats:  &counters{start: time.Now()},
		quotes: append([]Quote(nil), opts.Quotes...),
	}
	if opts.RatePerSecond > 0 {
		s.limiter = NewRateLimiter(opts.RatePerSecond, opts.Burst)
	}

	s.setupRoutes(opts)
	return s
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes(opts Options) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))
	r.Use(CORSMiddleware(NewCORSConfig(opts.AllowedOrigin)))
	if s.limiter != nil {
		r.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
	r.Use(s.countRequests)

	r.Get("/", s.handleHealth)
	r.Get("/stocks", s.handleStocks)
	r.Post("/chat", s.handleChat)
	r.Get("/market-summary", s.handleMarketSummary)
	r.Get("/stats", s.handleStats)

	s.router = r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// SetQuotes replaces the served watchlist.
func (s *Server) SetQuotes(quotes []Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = append([]Quote(nil), quotes...)
}

func (s *Server) currentQuotes() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Quote(nil), s.quotes...)
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.stats.total.Add(1)
		next.ServeHTTP(w, r)
	})
}

// ============================================================================
// HANDLERS
// ============================================================================

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": HealthMessage})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	s.stats.stocks.Add(1)
	writeJSON(w, http.StatusOK, s.currentQuotes())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.stats.chat.Add(1)
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		s.logger.Debug("invalid chat body", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if util.IsBlank(req.Message) {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply := Analyze(req.Message, Records(s.currentQuotes()))
	writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

func (s *Server) handleMarketSummary(w http.ResponseWriter, r *http.Request) {
	s.stats.summary.Add(1)
	summary := summarize(Records(s.currentQuotes()))
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.stats.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":          stats,
		"uptime_seconds": int64(time.Since(stats.StartTime).Seconds()),
		"version":        Version,
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown. After Shutdown it closes ln and returns
// nil without serving.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ln.Close()
	}
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.Info("demo server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("version", Version))

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server. Called before Serve, it stops a
// later Serve from starting.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	stats := s.stats.snapshot()
	s.logger.Info("demo server shutting down",
		zap.Int64("requests", stats.TotalRequests),
		zap.Int64("chat_requests", stats.ChatRequests))
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error body in the hosted backend's {"detail": ...} shape.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
